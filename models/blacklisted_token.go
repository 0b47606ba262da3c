package models

import "time"

// BlacklistedToken records a revoked token id until the token would have expired anyway.
type BlacklistedToken struct {
	ID        uint   `gorm:"primarykey"`
	TokenID   string `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt int64  `gorm:"not null;index"`
	CreatedAt time.Time
}
