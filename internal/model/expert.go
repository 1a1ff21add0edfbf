package model

import "time"

// Expert reviews formation content, independently from admins.
type Expert struct {
	ID           int       `json:"id"`
	Nom          string    `json:"nom"`
	Prenom       string    `json:"prenom"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateExpertRequest is the admin payload for creating an expert account.
// The initial password is generated server-side and sent by mail.
type CreateExpertRequest struct {
	Nom      string  `json:"nom" binding:"required,min=2,max=100"`
	Prenom   string  `json:"prenom" binding:"required,min=2,max=100"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	ImageURL *string `json:"image_url" binding:"omitempty,url"`
}
