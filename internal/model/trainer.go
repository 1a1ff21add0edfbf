package model

import "time"

// Trainer (formateur) authors formations. Accounts are created when an
// admin accepts a demande and stay unusable until explicitly activated.
type Trainer struct {
	ID              int       `json:"id"`
	Nom             string    `json:"nom"`
	Prenom          string    `json:"prenom"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Adresse         string    `json:"adresse"`
	Telephone       string    `json:"telephone"`
	Profession      string    `json:"profession"`
	YearsExperience int       `json:"years_experience"`
	Activated       bool      `json:"activated"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UpdateTrainerProfileRequest is the payload for a trainer editing their
// own profile.
type UpdateTrainerProfileRequest struct {
	Adresse         string `json:"adresse" binding:"required,max=255"`
	Telephone       string `json:"telephone" binding:"required,min=6,max=30"`
	Profession      string `json:"profession" binding:"required,max=100"`
	YearsExperience int    `json:"years_experience" binding:"min=0,max=80"`
}
