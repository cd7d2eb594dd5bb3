// Package terms gates conversational intake on legal-terms acceptance.
package terms

import "github.com/JuanVergara-9/notification-service2/internal/models"

// DefaultVersion identifies the terms text currently in force. Bumping it
// invalidates every prior acceptance.
const DefaultVersion = "2025-01"

const (
	ButtonAccept = "accept_terms"
	ButtonReject = "reject_terms"
)

const (
	PromptBody = "Hola! Antes de ayudarte con tu pedido necesitamos que aceptes " +
		"nuestros términos y condiciones: https://miservicio.ar/terminos"
	AcceptedReply = "¡Gracias! Ya podés contarnos qué necesitás y te conectamos con un profesional."
	RejectedReply = "Entendido. Si cambiás de opinión, escribinos de nuevo cuando quieras."
)

// Cleared reports whether the user accepted the version of the terms
// currently in force. A stale version means the gate closes again.
func Cleared(u models.User, version string) bool {
	return u.TermsAccepted && u.TermsVersion == version
}
