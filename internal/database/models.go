package database

import "time"

// RecentSearch is a query the user submitted. Only the query text is kept,
// never the results.
type RecentSearch struct {
	ID             uint      `gorm:"primaryKey"`
	Query          string    `gorm:"not null;uniqueIndex"`
	Count          int       `gorm:"not null;default:1"`
	LastSearchedAt time.Time `gorm:"not null;index"`
	CreatedAt      time.Time
}

// TableName overrides the table name
func (RecentSearch) TableName() string {
	return "recent_searches"
}
