package repositories

import "gorm.io/gorm"

// BelongsTo narrows a query to rows owned by userID. Every read and write
// on user-owned tables goes through it.
func BelongsTo(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
