package wa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendTextBuildsGraphPayload(t *testing.T) {
	var got outboundMessage
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if r.Header.Get("Authorization") != "Bearer token-123" {
			t.Errorf("missing bearer token")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"messages":[{"id":"wamid.abc"}]}`))
	}))
	defer srv.Close()

	c := &Client{AccessToken: "token-123", PhoneNumberID: "111222", BaseURL: srv.URL}
	id, err := c.SendText(context.Background(), "542604123456", "hola")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "wamid.abc" {
		t.Fatalf("unexpected message id: %s", id)
	}
	if path != "/111222/messages" {
		t.Fatalf("unexpected path: %s", path)
	}
	if got.MessagingProduct != "whatsapp" || got.Type != "text" || got.To != "542604123456" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got.Text == nil || got.Text.Body != "hola" {
		t.Fatalf("unexpected text body: %+v", got.Text)
	}
}

func TestSendButtonsBuildsInteractivePayload(t *testing.T) {
	var got outboundMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"messages":[{"id":"wamid.btn"}]}`))
	}))
	defer srv.Close()

	c := &Client{AccessToken: "t", PhoneNumberID: "1", BaseURL: srv.URL}
	_, err := c.SendButtons(context.Background(), "542604123456", "¿Aceptás?", []Button{
		{ID: "accept_terms", Title: "Aceptar"},
		{ID: "reject_terms", Title: "Rechazar"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != "interactive" || got.Interactive == nil {
		t.Fatalf("expected interactive payload: %+v", got)
	}
	if got.Interactive.Type != "button" || len(got.Interactive.Action.Buttons) != 2 {
		t.Fatalf("unexpected interactive shape: %+v", got.Interactive)
	}
	if got.Interactive.Action.Buttons[0].Reply.ID != "accept_terms" {
		t.Fatalf("unexpected button: %+v", got.Interactive.Action.Buttons[0])
	}
}

func TestSendWithoutCredentials(t *testing.T) {
	c := &Client{}
	if _, err := c.SendText(context.Background(), "54260", "hola"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSendUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &Client{AccessToken: "t", PhoneNumberID: "1", BaseURL: srv.URL}
	if _, err := c.SendText(context.Background(), "54260", "hola"); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

func TestWebhookPayloadFlattening(t *testing.T) {
	raw := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "1",
			"changes": [{
				"field": "messages",
				"value": {
					"messaging_product": "whatsapp",
					"messages": [
						{"from": "5492604123456", "id": "wamid.1", "type": "text", "text": {"body": "hola"}},
						{"from": "5492604123456", "id": "wamid.2", "type": "interactive",
						 "interactive": {"type": "button_reply", "button_reply": {"id": "accept_terms", "title": "Aceptar"}}}
					]
				}
			}]
		}]
	}`
	var payload WebhookPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	msgs := payload.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Body() != "hola" || msgs[0].ButtonID() != "" {
		t.Fatalf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].ButtonID() != "accept_terms" || msgs[1].Body() != "" {
		t.Fatalf("unexpected second message: %+v", msgs[1])
	}
}

func TestStatusOnlyPayloadHasNoMessages(t *testing.T) {
	raw := `{"object":"whatsapp_business_account","entry":[{"id":"1","changes":[{"field":"messages","value":{"messaging_product":"whatsapp"}}]}]}`
	var payload WebhookPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Messages()) != 0 {
		t.Fatalf("expected no messages")
	}
}
