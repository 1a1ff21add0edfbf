package model

import "time"

// DemandeStatus is the review state of a trainer-onboarding request.
// Accepted and refused demandes are deleted after their side effects run,
// so only pending records persist.
type DemandeStatus string

const (
	DemandePending DemandeStatus = "pending"
)

// Demande is a public application to become a trainer.
type Demande struct {
	ID        int           `json:"id"`
	Nom       string        `json:"nom"`
	Prenom    string        `json:"prenom"`
	Email     string        `json:"email"`
	Status    DemandeStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// SubmitDemandeRequest is the public payload for applying as a trainer.
type SubmitDemandeRequest struct {
	Nom    string `json:"nom" binding:"required,min=2,max=100"`
	Prenom string `json:"prenom" binding:"required,min=2,max=100"`
	Email  string `json:"email" binding:"required,email,max=255"`
}
