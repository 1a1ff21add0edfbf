package model

import (
	"time"

	"github.com/google/uuid"
)

// Formation is a course authored by a trainer. It becomes visible to
// learners ("published") only once both approval flags are set.
type Formation struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CategoryID     int       `json:"category_id"`
	TrainerID      int       `json:"trainer_id"`
	PriceCents     int64     `json:"price_cents"`
	ExpertApproved bool      `json:"expert_approved"`
	AdminApproved  bool      `json:"admin_approved"`
	ImageURL       *string   `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Chapters is populated only by detail queries.
	Chapters []Chapter `json:"chapters,omitempty"`
}

// Published reports whether the formation is visible and purchasable.
func (f *Formation) Published() bool {
	return f.ExpertApproved && f.AdminApproved
}

// UpsertFormationRequest is the trainer payload for creating or editing a
// formation. Prices are in euro cents.
type UpsertFormationRequest struct {
	Title       string  `json:"title" binding:"required,min=2,max=200"`
	Description string  `json:"description" binding:"required,max=5000"`
	CategoryID  int     `json:"category_id" binding:"required"`
	PriceCents  int64   `json:"price_cents" binding:"min=0"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
}
