package domain

import (
	"errors"
	"fmt"
)

// --- FAMILLES D'ERREURS ---
// Les adapters (HTTP) ne regardent que la famille via errors.Is, jamais le message.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// --- ERREURS DU DOMAINE ---
var (
	ErrArticleNotFound     = newKindError("article not found", ErrNotFound)
	ErrUserNotFound        = newKindError("user not found", ErrNotFound)
	ErrCategoryNotFound    = newKindError("category not found", ErrNotFound)
	ErrPreferencesNotFound = newKindError("preferences not found", ErrInvalidState)

	ErrEmailAlreadyExists = newKindError("email already exists", ErrConflict)
	ErrPhoneAlreadyExists = newKindError("phone already exists", ErrConflict)

	ErrInvalidCredentials = newKindError("invalid credentials", ErrUnauthorized)
	ErrInvalidToken       = newKindError("invalid token", ErrUnauthorized)

	ErrNotOwner = newKindError("only the owner can modify this resource", ErrForbidden)

	ErrInvalidEmail       = newKindError("invalid email format", ErrInvalidInput)
	ErrPasswordMismatch   = newKindError("passwords do not match", ErrInvalidInput)
	ErrWeakPassword       = newKindError("password must be at least 6 characters", ErrInvalidInput)
	ErrInvalidImage       = newKindError("invalid file type, only images are allowed", ErrInvalidInput)
	ErrInvalidPagination  = newKindError("page must be >= 1 and pageSize > 0", ErrInvalidInput)
	ErrInvalidFeedMode    = newKindError("unknown feed mode", ErrInvalidInput)
	ErrEmptyCategoryName  = newKindError("category name is required", ErrInvalidInput)
	ErrInvalidStatus      = newKindError("status must be draft or published", ErrInvalidInput)
	ErrMissingIdentifiers = newKindError("article id and user id are required", ErrInvalidInput)
)

// kindError porte un message lisible et une famille (errors.Is).
type kindError struct {
	msg  string
	kind error
}

func newKindError(msg string, kind error) error {
	return &kindError{msg: msg, kind: kind}
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// InvalidInput construit une erreur de validation ad hoc (champ manquant, etc.)
func InvalidInput(format string, args ...any) error {
	return newKindError(fmt.Sprintf(format, args...), ErrInvalidInput)
}

// StorageError enveloppe une panne du store (réseau, intégrité).
// Jamais retentée par le core : on la propage telle quelle.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError indique si err (ou une de ses causes) vient du store.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
