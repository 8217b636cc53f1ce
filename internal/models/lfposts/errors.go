package lfposts

import (
	"errors"
	"fmt"
)

// Taxonomie d'erreurs du dépôt : chaque appel remonte l'une d'elles,
// jamais un écrasement silencieux. Aucune n'est fatale au process.
var (
	ErrNotFound         = errors.New("article non trouvé")
	ErrDuplicateSlug    = errors.New("slug déjà utilisé")
	ErrStoreUnavailable = errors.New("base de données indisponible")
)

// ValidationError bloque la sauvegarde localement, sans toucher au dépôt
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
