package postgres

import (
	"strings"

	"accounts/internal/errors"

	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether the error came from a unique
// index rejecting a write. GORM translates driver errors into
// gorm.ErrDuplicatedKey on recent driver versions; the message probe covers
// drivers that predate the translation.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "sqlstate 23505")
}
