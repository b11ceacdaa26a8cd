package models

import (
	"time"

	"gorm.io/gorm"
)

// ConsoleSession is one signed-in browser session of the console.
type ConsoleSession struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"index"`
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for ConsoleSession Model
func (ConsoleSession) TableName() string {
	return "console_sessions"
}

// SessionEntry is one key of a session's key-value store.
type SessionEntry struct {
	SessionID string `gorm:"primaryKey;size:36"`
	Key       string `gorm:"primaryKey;size:32"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for SessionEntry Model
func (SessionEntry) TableName() string {
	return "session_entries"
}
