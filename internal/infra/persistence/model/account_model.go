package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. The ID is populated by the
// application at creation time; the unique index on email is the
// authoritative guard against duplicate registrations.
type AccountModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Username       string    `gorm:"type:varchar(100)"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordDigest []byte    `gorm:"type:bytea;not null"`
	Salt           []byte    `gorm:"type:bytea;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
