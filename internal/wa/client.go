// Package wa is the messaging-gateway boundary: it sends text and
// interactive messages through the WhatsApp Cloud API and decodes inbound
// webhook payloads.
package wa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const graphBaseURL = "https://graph.facebook.com/v20.0"

// ErrNotConfigured marks a send attempted without credentials. The HTTP
// layer reports it as a configuration error rather than an upstream one.
var ErrNotConfigured = errors.New("wa: messaging credentials not configured")

type Client struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	HTTP          *http.Client
}

type Button struct {
	ID    string
	Title string
}

type outboundMessage struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Text             *textObj        `json:"text,omitempty"`
	Interactive      *interactiveObj `json:"interactive,omitempty"`
}

type textObj struct {
	Body string `json:"body"`
}

type interactiveObj struct {
	Type   string    `json:"type"`
	Body   bodyObj   `json:"body"`
	Action actionObj `json:"action"`
}

type bodyObj struct {
	Text string `json:"text"`
}

type actionObj struct {
	Buttons []buttonObj `json:"buttons"`
}

type buttonObj struct {
	Type  string   `json:"type"`
	Reply replyObj `json:"reply"`
}

type replyObj struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// SendText delivers a plain text message. The recipient must already be in
// outbound format (see the phone package).
func (c *Client) SendText(ctx context.Context, to, body string) (string, error) {
	return c.send(ctx, outboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             &textObj{Body: body},
	})
}

// SendButtons delivers an interactive reply-button message.
func (c *Client) SendButtons(ctx context.Context, to, body string, buttons []Button) (string, error) {
	msg := outboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: &interactiveObj{
			Type: "button",
			Body: bodyObj{Text: body},
		},
	}
	for _, b := range buttons {
		msg.Interactive.Action.Buttons = append(msg.Interactive.Action.Buttons, buttonObj{
			Type:  "reply",
			Reply: replyObj{ID: b.ID, Title: b.Title},
		})
	}
	return c.send(ctx, msg)
}

func (c *Client) send(ctx context.Context, msg outboundMessage) (string, error) {
	if c.AccessToken == "" || c.PhoneNumberID == "" {
		return "", ErrNotConfigured
	}
	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	base := c.BaseURL
	if base == "" {
		base = graphBaseURL
	}

	b, _ := json.Marshal(msg)
	endpoint := fmt.Sprintf("%s/%s/messages", base, c.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("wa: send status %s", resp.Status)
	}

	var r sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}
	if len(r.Messages) == 0 {
		return "", errors.New("wa: send response carried no message id")
	}
	return r.Messages[0].ID, nil
}
