package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JuanVergara-9/notification-service2/internal/models"
)

const systemPrompt = `Sos el asistente de miservicio, una plataforma que conecta clientes con profesionales de oficios en Argentina.
Tu tarea es conversar con el cliente hasta reunir: categoría del oficio, descripción del problema, zona (ciudad y provincia) y urgencia.
Respondé SIEMPRE con un JSON con esta forma exacta:
{"isComplete": bool, "replyToClient": "texto para el cliente", "extractedData": {"category": "", "description": "", "zone": "", "urgency": ""}}
isComplete es true solo cuando los cuatro campos tienen valor. replyToClient debe pedir amablemente lo que falte.`

// HTTPExtractor calls an OpenAI-compatible chat-completions endpoint and
// parses the model's JSON verdict.
type HTTPExtractor struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (e HTTPExtractor) Extract(ctx context.Context, turns []models.Turn) (models.Extraction, error) {
	if e.APIKey == "" {
		return models.Extraction{}, errors.New("intent: api key not configured")
	}
	if e.Client == nil {
		e.Client = &http.Client{Timeout: 15 * time.Second}
	}

	payload := chatRequest{Model: e.Model, Temperature: 0}
	payload.ResponseFormat.Type = "json_object"
	payload.Messages = append(payload.Messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, t := range turns {
		role := "user"
		if t.Role == models.RoleAssistant {
			role = "assistant"
		}
		payload.Messages = append(payload.Messages, chatMessage{Role: role, Content: t.Text})
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/v1/chat/completions", bytes.NewBuffer(b))
	if err != nil {
		return models.Extraction{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.Client.Do(req)
	if err != nil {
		return models.Extraction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Extraction{}, fmt.Errorf("intent: model api status %s", resp.Status)
	}

	var r chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return models.Extraction{}, err
	}
	if len(r.Choices) == 0 {
		return models.Extraction{}, errors.New("intent: empty completion")
	}

	return ParseVerdict(r.Choices[0].Message.Content)
}

// ParseVerdict decodes the model's JSON content into an Extraction. A
// malformed payload is an error; the caller treats the turn as a no-op.
func ParseVerdict(content string) (models.Extraction, error) {
	var ex models.Extraction
	if err := json.Unmarshal([]byte(content), &ex); err != nil {
		return models.Extraction{}, fmt.Errorf("intent: malformed verdict: %w", err)
	}
	return ex, nil
}
