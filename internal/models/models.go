package models

import "time"

const (
	StatusOpen      = "ABIERTO"
	StatusAssigned  = "ASIGNADO"
	StatusCompleted = "COMPLETADO"
	StatusCancelled = "CANCELADO"

	SourceWhatsApp = "whatsapp"
	SourceWeb      = "web"
)

type Ticket struct {
	ID          int64     `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Zone        string    `json:"zone"`
	Urgency     string    `json:"urgency"`
	Status      string    `json:"status"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

type User struct {
	PhoneNumber   string     `json:"phone_number"`
	TermsAccepted bool       `json:"terms_accepted"`
	AcceptedAt    *time.Time `json:"accepted_at,omitempty"`
	TermsVersion  string     `json:"terms_version"`
}

// Turn is one entry in a sender's conversation history.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TicketDraft holds the fields collected during a conversation before a
// ticket exists.
type TicketDraft struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Zone        string `json:"zone"`
	Urgency     string `json:"urgency"`
}

// Extraction is the structured judgment returned by the intent extractor.
type Extraction struct {
	IsComplete    bool        `json:"isComplete"`
	ReplyToClient string      `json:"replyToClient"`
	Data          TicketDraft `json:"extractedData"`
}

// MatchCandidate is a read-only projection of a provider returned by the
// directory service. Never persisted here.
type MatchCandidate struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	AvatarURL          string `json:"avatar_url"`
	ContactHandle      string `json:"contact_handle"`
	IsPro              bool   `json:"is_pro"`
	IdentityStatus     string `json:"identity_status"`
	EmergencyAvailable bool   `json:"emergency_available"`
}
