package models

import "time"

// WaitlistEntry is written once per signup and never updated by the API.
type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;size:255"`
	Email     string    `gorm:"not null;size:255;uniqueIndex:idx_waitlist_entries_email"`
	IsPublic  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}
