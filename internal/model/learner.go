package model

import "time"

// Learner is a marketplace customer account.
type Learner struct {
	ID           int       `json:"id"`
	Nom          string    `json:"nom"`
	Prenom       string    `json:"prenom"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Adresse      string    `json:"adresse"`
	Telephone    string    `json:"telephone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterLearnerRequest is the payload for learner self-registration.
type RegisterLearnerRequest struct {
	Nom       string `json:"nom" binding:"required,min=2,max=100"`
	Prenom    string `json:"prenom" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=128"`
	Adresse   string `json:"adresse" binding:"required,max=255"`
	Telephone string `json:"telephone" binding:"required,min=6,max=30"`
}
