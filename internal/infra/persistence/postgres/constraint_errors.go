package postgres

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helpers for classifying PostgreSQL constraint violations surfaced by GORM.

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
