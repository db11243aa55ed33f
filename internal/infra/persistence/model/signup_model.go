// Package model holds the GORM row types of the relational store.
package model

import (
	"time"

	"github.com/google/uuid"
)

// SignupModel mirrors the 'signups' table. The unique index on email is what
// makes repeated signups idempotent.
type SignupModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(254);not null;uniqueIndex:idx_signups_email"`
	Source    string    `gorm:"type:varchar(64);not null;default:'landing'"`
	UserAgent string    `gorm:"type:text"`
	IPAddress string    `gorm:"type:varchar(64)"`
	Verified  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (SignupModel) TableName() string {
	return "signups"
}
