package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"worknest-console/internal/cache"
	"worknest-console/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// snapshot is a cached key space with the expiry of its session.
type snapshot struct {
	values    Values
	expiresAt time.Time
}

// Store persists session key spaces in sqlite. Reads go through an
// in-memory cache; every write invalidates the session's cached snapshot.
type Store struct {
	db    *gorm.DB
	ttl   time.Duration
	cache cache.Cache[string, snapshot]
}

// NewStore creates a store whose sessions live for ttl.
func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		db:  db,
		ttl: ttl,
		cache: cache.NewSimpleCache[string, snapshot](cache.Options{
			ConcurrencySafe: true,
			DefaultTTL:      5 * time.Minute,
		}),
	}
}

// TTL is the lifetime of new sessions.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create opens a session and writes its initial key space.
func (s *Store) Create(ctx context.Context, email string, values Values) (string, error) {
	id := uuid.NewString()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.ConsoleSession{
			ID:        id,
			Email:     strings.ToLower(email),
			ExpiresAt: time.Now().Add(s.ttl),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return putEntries(tx, id, values)
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// Put writes keys into an existing session. Last write wins per key.
func (s *Store) Put(ctx context.Context, id string, values Values) error {
	if _, err := s.header(ctx, id); err != nil {
		return err
	}
	if err := putEntries(s.db.WithContext(ctx), id, values); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	s.cache.Delete(id)
	return nil
}

func putEntries(tx *gorm.DB, id string, values Values) error {
	if len(values) == 0 {
		return nil
	}
	rows := make([]models.SessionEntry, 0, len(values))
	for k, v := range values {
		rows = append(rows, models.SessionEntry{SessionID: id, Key: k, Value: v})
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
}

func (s *Store) header(ctx context.Context, id string) (*models.ConsoleSession, error) {
	var row models.ConsoleSession
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if time.Now().After(row.ExpiresAt) {
		return nil, ErrExpired
	}
	return &row, nil
}

// Values returns a snapshot of the session's key space. A cached snapshot
// is not served past its session's expiry.
func (s *Store) Values(ctx context.Context, id string) (Values, error) {
	snap, err := s.cache.GetOrLoad(id, 0, func() (snapshot, error) {
		row, err := s.header(ctx, id)
		if err != nil {
			return snapshot{}, err
		}
		var rows []models.SessionEntry
		if err := s.db.WithContext(ctx).Where("session_id = ?", id).Find(&rows).Error; err != nil {
			return snapshot{}, fmt.Errorf("read session entries: %w", err)
		}
		values := make(Values, len(rows))
		for _, r := range rows {
			values[r.Key] = r.Value
		}
		return snapshot{values: values, expiresAt: row.ExpiresAt}, nil
	})
	if err != nil {
		return nil, err
	}
	if time.Now().After(snap.expiresAt) {
		s.cache.Delete(id)
		return nil, ErrExpired
	}
	return snap.values, nil
}

// Load returns the typed session.
func (s *Store) Load(ctx context.Context, id string) (*Session, error) {
	values, err := s.Values(ctx, id)
	if err != nil {
		return nil, err
	}
	return Load(id, values)
}

// Delete ends a session. The header is soft-deleted, the entries removed.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.cache.Delete(id)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.SessionEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ConsoleSession{}, "id = ?", id).Error
	})
}

// PurgeExpired removes every session past its expiry and reports how many.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&models.ConsoleSession{}).
		Where("expires_at < ?", time.Now()).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			return 0, err
		}
	}
	return int64(len(ids)), nil
}
