package services

import (
	"errors"

	"tomato-backend/pkg/apperr"

	"gorm.io/gorm"
)

// lookupErr maps a repository read failure onto the error taxonomy. A record
// that does not exist and a record the caller does not own both surface as
// NotFound so neither leaks existence.
func lookupErr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.ErrNotFound, msg)
	}
	return apperr.Internal(err)
}
