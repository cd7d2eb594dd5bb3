package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JuanVergara-9/notification-service2/internal/db"
	"github.com/JuanVergara-9/notification-service2/internal/intent"
	"github.com/JuanVergara-9/notification-service2/internal/models"
	"github.com/JuanVergara-9/notification-service2/internal/phone"
	"github.com/JuanVergara-9/notification-service2/internal/session"
	"github.com/JuanVergara-9/notification-service2/internal/terms"
	"github.com/JuanVergara-9/notification-service2/internal/wa"
)

// processTimeout bounds all work triggered by one inbound message. The
// webhook acknowledgement never waits for it.
const processTimeout = 30 * time.Second

type UserStore interface {
	GetUser(ctx context.Context, phone string) (models.User, error)
	CreateUser(ctx context.Context, phone string) (models.User, error)
	AcceptTerms(ctx context.Context, phone string, version string) error
}

type TicketStore interface {
	SaveTicket(ctx context.Context, phone string, draft models.TicketDraft, source string) (int64, error)
}

type Matcher interface {
	FindProviders(ctx context.Context, category, zone, urgency string) []models.MatchCandidate
}

type Sender interface {
	SendText(ctx context.Context, to, body string) (string, error)
	SendButtons(ctx context.Context, to, body string, buttons []wa.Button) (string, error)
}

// Orchestrator ties the terms gate, the session state machine, ticket
// persistence and matchmaking into the end-to-end webhook flow.
type Orchestrator struct {
	Users     UserStore
	Tickets   TicketStore
	Sessions  session.Store
	Extractor intent.Extractor
	Matcher   Matcher
	Sender    Sender
	Logger    zerolog.Logger

	AllowedSender string
	FrontendURL   string
	TermsVersion  string
}

// HandleWebhook fans every inbound message out to a detached goroutine.
// Processing is best-effort, at-most-once: by the time it runs, the
// transport response has already been sent, so failures are only logged.
func (o *Orchestrator) HandleWebhook(payload wa.WebhookPayload) {
	for _, msg := range payload.Messages() {
		msg := msg
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
			defer cancel()
			logger := o.Logger.With().Str("job_id", uuid.NewString()).Str("sender", msg.From).Logger()
			o.ProcessMessage(ctx, logger, msg)
		}()
	}
}

// ProcessMessage runs the full per-message sequence: allow-list, button
// handling, terms gate, extraction state machine, matchmaking.
func (o *Orchestrator) ProcessMessage(ctx context.Context, logger zerolog.Logger, msg wa.InboundMessage) {
	sender := msg.From
	outbound := phone.ToOutbound(sender)

	// Single-tenant service: anything off the allow-list is dropped with
	// no reply at all.
	if o.AllowedSender != "" && !phone.Matches(sender, o.AllowedSender) {
		logger.Debug().Msg("sender not allow-listed, dropping")
		return
	}

	if buttonID := msg.ButtonID(); buttonID != "" {
		o.handleButton(ctx, logger, sender, outbound, buttonID)
		return
	}

	body := strings.TrimSpace(msg.Body())
	if body == "" {
		logger.Debug().Str("type", msg.Type).Msg("ignoring non-text message")
		return
	}

	user, err := o.Users.GetUser(ctx, sender)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			logger.Error().Err(err).Msg("load user failed")
			return
		}
		user, err = o.Users.CreateUser(ctx, sender)
		if err != nil {
			logger.Error().Err(err).Msg("create user failed")
			return
		}
	}

	if !terms.Cleared(user, o.TermsVersion) {
		buttons := []wa.Button{
			{ID: terms.ButtonAccept, Title: "Aceptar"},
			{ID: terms.ButtonReject, Title: "Rechazar"},
		}
		if _, err := o.Sender.SendButtons(ctx, outbound, terms.PromptBody, buttons); err != nil {
			logger.Error().Err(err).Msg("terms prompt send failed")
		}
		return
	}

	o.runExtraction(ctx, logger, sender, outbound, body)
}

func (o *Orchestrator) handleButton(ctx context.Context, logger zerolog.Logger, sender, outbound, buttonID string) {
	switch buttonID {
	case terms.ButtonAccept:
		if _, err := o.Users.CreateUser(ctx, sender); err != nil {
			logger.Error().Err(err).Msg("create user on accept failed")
			return
		}
		if err := o.Users.AcceptTerms(ctx, sender, o.TermsVersion); err != nil {
			logger.Error().Err(err).Msg("accept terms failed")
			return
		}
		if _, err := o.Sender.SendText(ctx, outbound, terms.AcceptedReply); err != nil {
			logger.Error().Err(err).Msg("accept confirmation send failed")
		}
	case terms.ButtonReject:
		if _, err := o.Sender.SendText(ctx, outbound, terms.RejectedReply); err != nil {
			logger.Error().Err(err).Msg("reject acknowledgement send failed")
		}
	default:
		logger.Warn().Str("button", buttonID).Msg("unknown button reply")
	}
}

// runExtraction advances the per-sender dialogue one turn. The session
// accumulates the user turn before extraction so that a failed extractor
// call leaves the history intact for the next attempt.
func (o *Orchestrator) runExtraction(ctx context.Context, logger zerolog.Logger, sender, outbound, body string) {
	if err := o.Sessions.Append(ctx, sender, models.Turn{Role: models.RoleUser, Text: body}); err != nil {
		logger.Error().Err(err).Msg("session append failed")
		return
	}
	history, err := o.Sessions.History(ctx, sender)
	if err != nil {
		logger.Error().Err(err).Msg("session load failed")
		return
	}

	extraction, err := o.Extractor.Extract(ctx, history)
	if err != nil {
		// No-op turn: no reply, session untouched, next message retries
		// with the accumulated history.
		logger.Error().Err(err).Msg("intent extraction failed")
		return
	}

	if !extraction.IsComplete {
		if extraction.ReplyToClient == "" {
			logger.Warn().Msg("incomplete extraction carried no reply")
			return
		}
		if err := o.Sessions.Append(ctx, sender, models.Turn{Role: models.RoleAssistant, Text: extraction.ReplyToClient}); err != nil {
			logger.Error().Err(err).Msg("session append failed")
			return
		}
		if _, err := o.Sender.SendText(ctx, outbound, extraction.ReplyToClient); err != nil {
			logger.Error().Err(err).Msg("conversational reply send failed")
		}
		return
	}

	o.completeTicket(ctx, logger, sender, outbound, extraction.Data)
}

// completeTicket persists the ticket, clears the session so the next
// message starts fresh, and sends exactly one matchmaking outcome message.
// The extractor's own completion reply is suppressed in its favor.
func (o *Orchestrator) completeTicket(ctx context.Context, logger zerolog.Logger, sender, outbound string, draft models.TicketDraft) {
	ticketID, err := o.Tickets.SaveTicket(ctx, sender, draft, models.SourceWhatsApp)
	if err != nil {
		logger.Error().Err(err).Msg("ticket persist failed")
		return
	}
	if err := o.Sessions.Clear(ctx, sender); err != nil {
		logger.Error().Err(err).Int64("ticket_id", ticketID).Msg("session clear failed")
	}
	logger.Info().Int64("ticket_id", ticketID).Str("category", draft.Category).Msg("ticket created")

	candidates := o.Matcher.FindProviders(ctx, draft.Category, draft.Zone, draft.Urgency)

	var reply string
	if len(candidates) > 0 {
		reply = fmt.Sprintf(
			"¡Buenas noticias! Encontramos %d profesionales disponibles para tu pedido. Mirá los perfiles acá: %s/pedidos/match/%d",
			len(candidates), o.FrontendURL, ticketID,
		)
	} else {
		reply = "Tu pedido quedó registrado. Por ahora no hay profesionales disponibles en tu zona, pero te avisamos apenas aparezca uno."
	}
	if _, err := o.Sender.SendText(ctx, outbound, reply); err != nil {
		logger.Error().Err(err).Int64("ticket_id", ticketID).Msg("outcome message send failed")
	}
}

// WorkerNotification is the message sent to a matched professional about a
// new request in their trade.
func WorkerNotification(workerName, category string) string {
	return fmt.Sprintf(
		"Hola %s! Hay un nuevo pedido de %s en San Rafael, Mendoza. Entrá a miservicio para ver los detalles.",
		workerName, category,
	)
}
