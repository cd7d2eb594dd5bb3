package intent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JuanVergara-9/notification-service2/internal/models"
)

func TestParseVerdictComplete(t *testing.T) {
	content := `{"isComplete":true,"replyToClient":"","extractedData":{"category":"plomeria","description":"pérdida de agua","zone":"San Rafael, Mendoza","urgency":"alta"}}`
	ex, err := ParseVerdict(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ex.IsComplete {
		t.Fatalf("expected complete extraction")
	}
	if ex.Data.Category != "plomeria" || ex.Data.Urgency != "alta" {
		t.Fatalf("unexpected data: %+v", ex.Data)
	}
}

func TestParseVerdictMalformed(t *testing.T) {
	if _, err := ParseVerdict("lo siento, no puedo ayudarte"); err == nil {
		t.Fatalf("expected error for non-JSON content")
	}
}

func TestHTTPExtractorSendsDialogueAndParsesReply(t *testing.T) {
	var req chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		content := `{"isComplete":false,"replyToClient":"¿En qué zona estás?","extractedData":{}}`
		resp := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	e := HTTPExtractor{BaseURL: srv.URL, APIKey: "test-key", Model: "gpt-4o-mini"}
	ex, err := e.Extract(context.Background(), []models.Turn{
		{Role: models.RoleUser, Text: "se me rompió un caño"},
		{Role: models.RoleAssistant, Text: "¿es urgente?"},
		{Role: models.RoleUser, Text: "sí, muy"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.IsComplete {
		t.Fatalf("expected incomplete extraction")
	}
	if ex.ReplyToClient != "¿En qué zona estás?" {
		t.Fatalf("unexpected reply: %q", ex.ReplyToClient)
	}

	// system prompt + 3 dialogue turns
	if len(req.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(req.Messages))
	}
	if req.Messages[2].Role != "assistant" {
		t.Fatalf("expected assistant role preserved, got %s", req.Messages[2].Role)
	}
	if req.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json_object response format")
	}
}

func TestHTTPExtractorRejectsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e := HTTPExtractor{BaseURL: srv.URL, APIKey: "k", Model: "m"}
	if _, err := e.Extract(context.Background(), []models.Turn{{Role: models.RoleUser, Text: "hola"}}); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

func TestHTTPExtractorRequiresAPIKey(t *testing.T) {
	e := HTTPExtractor{BaseURL: "http://example.invalid", Model: "m"}
	if _, err := e.Extract(context.Background(), nil); err == nil {
		t.Fatalf("expected error without api key")
	}
}
