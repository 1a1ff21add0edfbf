package model

import "github.com/google/uuid"

// ResourceKind is the media type of a course resource.
type ResourceKind string

const (
	ResourcePDF   ResourceKind = "pdf"
	ResourceImage ResourceKind = "image"
)

// Chapter is an ordered section of a formation.
type Chapter struct {
	ID             uuid.UUID `json:"id"`
	FormationID    uuid.UUID `json:"formation_id"`
	Title          string    `json:"title"`
	OrderIndex     int       `json:"order_index"`
	ExpertAccepted bool      `json:"expert_accepted"`
	Comment        *string   `json:"comment,omitempty"`

	// Parts is populated only by detail queries.
	Parts []Part `json:"parts,omitempty"`
}

// Part is an ordered subdivision of a chapter.
type Part struct {
	ID         uuid.UUID `json:"id"`
	ChapterID  uuid.UUID `json:"chapter_id"`
	Title      string    `json:"title"`
	OrderIndex int       `json:"order_index"`

	// Resources is populated only by detail queries.
	Resources []Resource `json:"resources,omitempty"`
}

// Resource is a file attached to a part. The URL comes verbatim from the
// object storage service.
type Resource struct {
	ID         uuid.UUID    `json:"id"`
	PartID     uuid.UUID    `json:"part_id"`
	Kind       ResourceKind `json:"kind"`
	FileURL    string       `json:"file_url"`
	OrderIndex int          `json:"order_index"`
}

// UpsertChapterRequest is the trainer payload for creating or editing a chapter.
type UpsertChapterRequest struct {
	Title      string `json:"title" binding:"required,min=2,max=200"`
	OrderIndex int    `json:"order_index" binding:"min=0"`
}

// UpsertPartRequest is the trainer payload for creating or editing a part.
type UpsertPartRequest struct {
	Title      string `json:"title" binding:"required,min=2,max=200"`
	OrderIndex int    `json:"order_index" binding:"min=0"`
}

// AddResourceRequest is the trainer payload for attaching a resource to a part.
type AddResourceRequest struct {
	Kind       ResourceKind `json:"kind" binding:"required,oneof=pdf image"`
	FileURL    string       `json:"file_url" binding:"required,url"`
	OrderIndex int          `json:"order_index" binding:"min=0"`
}

// ReviewChapterRequest is the expert payload for accepting or commenting a chapter.
type ReviewChapterRequest struct {
	Accepted bool    `json:"accepted"`
	Comment  *string `json:"comment" binding:"omitempty,max=2000"`
}
