package scope

import "gorm.io/gorm"

// BySession filters payloads down to one capture session.
func BySession(sessionId string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("session_id = ?", sessionId)
	}
}

// OrderByCapture returns rows in the order the exchanges were captured.
func OrderByCapture(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
