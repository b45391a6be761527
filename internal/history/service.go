package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justchokingaround/marquee/internal/database"
)

// ErrNoDatabase is returned when the service was built without a connection
var ErrNoDatabase = errors.New("database connection is nil")

// Entry is a recent search as shown to the user
type Entry struct {
	Query          string
	Count          int
	LastSearchedAt time.Time
}

// Service keeps the list of recent searches
type Service struct {
	db    *gorm.DB
	limit int
	now   func() time.Time
}

// NewService creates a history service that keeps at most limit entries.
// A limit of 0 or less keeps everything.
func NewService(db *gorm.DB, limit int) *Service {
	return &Service{db: db, limit: limit, now: time.Now}
}

// Record stores query as the most recent search. Blank queries are ignored.
func (s *Service) Record(query string) error {
	if s.db == nil {
		return ErrNoDatabase
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	now := s.now()
	entry := database.RecentSearch{Query: query, Count: 1, LastSearchedAt: now}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "query"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count":            gorm.Expr("count + 1"),
			"last_searched_at": now,
		}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	return s.prune()
}

// Recent returns up to limit searches, newest first. A limit of 0 or less
// falls back to the service limit.
func (s *Service) Recent(limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	if limit <= 0 {
		limit = s.limit
	}

	query := s.db.Model(&database.RecentSearch{}).Order("last_searched_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []database.RecentSearch
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent searches: %w", err)
	}

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{Query: r.Query, Count: r.Count, LastSearchedAt: r.LastSearchedAt}
	}
	return entries, nil
}

// Delete removes a single query
func (s *Service) Delete(query string) error {
	if s.db == nil {
		return ErrNoDatabase
	}
	return s.db.Where("query = ?", strings.TrimSpace(query)).Delete(&database.RecentSearch{}).Error
}

// Clear removes every recent search and reports how many were removed
func (s *Service) Clear() (int64, error) {
	if s.db == nil {
		return 0, ErrNoDatabase
	}
	result := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&database.RecentSearch{})
	return result.RowsAffected, result.Error
}

// prune drops everything past the newest limit entries
func (s *Service) prune() error {
	if s.limit <= 0 {
		return nil
	}

	keep := s.db.Model(&database.RecentSearch{}).
		Select("id").
		Order("last_searched_at DESC").
		Order("id DESC").
		Limit(s.limit)

	return s.db.Where("id NOT IN (?)", keep).Delete(&database.RecentSearch{}).Error
}
