package repository

import "errors"

// Sentinel errors shared across repositories. Services translate these to
// API error codes; raw pgx errors never cross the repository boundary for
// the cases handlers need to branch on.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already registered for this actor kind")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrCategoryInUse     = errors.New("category is referenced by formations")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Cart-specific sentinels, detected inside cart transactions.
var (
	ErrCartPaid         = errors.New("cart is already paid and terminal")
	ErrCartItemNotFound = errors.New("formation is not in the cart")
	ErrCartEmpty        = errors.New("cart has no items")
)
