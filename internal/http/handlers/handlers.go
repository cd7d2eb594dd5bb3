package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/JuanVergara-9/notification-service2/internal/db"
	"github.com/JuanVergara-9/notification-service2/internal/models"
	"github.com/JuanVergara-9/notification-service2/internal/phone"
	"github.com/JuanVergara-9/notification-service2/internal/service"
	"github.com/JuanVergara-9/notification-service2/internal/wa"
)

// TicketStore is the slice of the database the HTTP surface needs.
type TicketStore interface {
	SaveTicket(ctx context.Context, phone string, draft models.TicketDraft, source string) (int64, error)
	ListTickets(ctx context.Context, limit int) ([]models.Ticket, error)
	GetTicketByID(ctx context.Context, id int64) (models.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id int64, status string) (models.Ticket, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Store        TicketStore
	DB           Pinger
	Orchestrator *service.Orchestrator
	Sender       service.Sender
	Validator    *validator.Validate
	Logger       zerolog.Logger
	VerifyToken  string
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /readyz [get]
func (h *Handler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if h.DB != nil {
		if err := h.DB.Ping(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary List latest tickets
// @Tags tickets
// @Produce json
// @Success 200 {object} map[string]any
// @Router /tickets [get]
func (h *Handler) TicketsList(c *gin.Context) {
	tickets, err := h.Store.ListTickets(c.Request.Context(), 100)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list tickets", err.Error())
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tickets})
}

// @Summary Get one ticket
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /tickets/{id} [get]
func (h *Handler) TicketByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
		return
	}
	ticket, err := h.Store.GetTicketByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get ticket", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": ticket})
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ABIERTO ASIGNADO COMPLETADO CANCELADO"`
}

// @Summary Update ticket status
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /tickets/{id}/status [patch]
func (h *Handler) UpdateTicketStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status is required", err.Error())
		return
	}
	ticket, err := h.Store.UpdateTicketStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update ticket", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": ticket})
}

type CreateTicketRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	Zone        string `json:"zone"`
	Urgency     string `json:"urgency"`
}

// @Summary Create a ticket from the web form
// @Tags tickets
// @Accept json
// @Produce json
// @Param body body CreateTicketRequest true "Ticket fields"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /tickets [post]
func (h *Handler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "phone_number, category and description are required", err.Error())
		return
	}
	draft := models.TicketDraft{
		Category:    req.Category,
		Description: req.Description,
		Zone:        req.Zone,
		Urgency:     req.Urgency,
	}
	id, err := h.Store.SaveTicket(c.Request.Context(), req.PhoneNumber, draft, models.SourceWeb)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to save ticket", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "ticketId": id})
}

type SendWhatsAppRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	WorkerName  string `json:"workerName" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

// @Summary Notify a professional about a new request
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body SendWhatsAppRequest true "Notification fields"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /notifications/send-whatsapp [post]
func (h *Handler) SendWhatsApp(c *gin.Context) {
	var req SendWhatsAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "phoneNumber, workerName and category are required", err.Error())
		return
	}

	body := service.WorkerNotification(req.WorkerName, req.Category)
	messageID, err := h.Sender.SendText(c.Request.Context(), phone.ToOutbound(req.PhoneNumber), body)
	if err != nil {
		if errors.Is(err, wa.ErrNotConfigured) {
			writeError(c, http.StatusInternalServerError, "CONFIG_ERROR", "Messaging credentials not configured", nil)
			return
		}
		writeError(c, http.StatusBadGateway, "SEND_FAILED", "Failed to send WhatsApp message", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messageId": messageID})
}

// @Summary Webhook verification handshake
// @Tags webhook
// @Produce plain
// @Success 200 {string} string
// @Failure 403 {object} map[string]any
// @Router /webhook [get]
func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == h.VerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

// ReceiveWebhook acknowledges the delivery unconditionally and hands the
// payload to the orchestrator. Processing failures are observable only in
// the logs, never in this response.
//
// @Summary Inbound messaging webhook
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /webhook [post]
func (h *Handler) ReceiveWebhook(c *gin.Context) {
	var payload wa.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.Logger.Warn().Err(err).Msg("undecodable webhook payload")
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	h.Orchestrator.HandleWebhook(payload)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
