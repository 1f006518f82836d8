package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFoundError reports whether err means the queried record does not
// exist. Repository methods surface gorm's sentinel unchanged so service
// code can branch on it without importing gorm.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
