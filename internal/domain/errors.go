package domain

import (
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("record not found")

// ValidationError reports a request value rejected before touching storage.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}
