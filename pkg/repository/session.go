package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/tripscope/pkg/domain"
)

// SessionRepository handles conversation session storage
type SessionRepository struct {
	db *sqlx.DB
}

// sessionSQL represents a session for SQL operations
type sessionSQL struct {
	ID          string    `db:"id"`
	Preferences string    `db:"preferences"`
	Turns       int       `db:"turns"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession inserts a new session
func (r *SessionRepository) CreateSession(ctx context.Context, s *domain.Session) error {
	row, err := r.toSQL(s)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sessions (id, preferences, turns, created_at, updated_at)
		VALUES (:id, :preferences, :turns, :created_at, :updated_at)
	`
	err = withLockRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, row)
		return err
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession returns a session by id, domain.ErrNotFound if it doesn't exist
func (r *SessionRepository) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	var row sessionSQL
	err := r.db.GetContext(ctx, &row, "SELECT id, preferences, turns, created_at, updated_at FROM sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return r.toDomain(&row)
}

// UpdateSession saves preferences, turn count and update time of an existing session.
// The save happens only if the stored session still has the given turn count, i.e. nobody
// updated it since it was read; domain.ErrConflict is returned otherwise.
func (r *SessionRepository) UpdateSession(ctx context.Context, s *domain.Session, turns int) error {
	row, err := r.toSQL(s)
	if err != nil {
		return err
	}

	query := `UPDATE sessions SET preferences = ?, turns = ?, updated_at = ? WHERE id = ? AND turns = ?`
	var affected int64
	err = withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, row.Preferences, row.Turns, row.UpdatedAt, row.ID, turns)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM sessions WHERE id = ?", s.ID); err != nil {
		return fmt.Errorf("check session %s: %w", s.ID, err)
	}
	if count == 0 {
		return fmt.Errorf("session %s: %w", s.ID, domain.ErrNotFound)
	}
	return fmt.Errorf("session %s changed since turn %d: %w", s.ID, turns, domain.ErrConflict)
}

// DeleteSession removes a session, domain.ErrNotFound if it doesn't exist
func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	var affected int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteSessionsBefore removes sessions not updated since the given time and returns how many were removed
func (r *SessionRepository) DeleteSessionsBefore(ctx context.Context, before time.Time) (int64, error) {
	var affected int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE updated_at < ?", dbTime(before))
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return affected, nil
}

// CountSessions returns the number of stored sessions
func (r *SessionRepository) CountSessions(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM sessions"); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func (r *SessionRepository) toSQL(s *domain.Session) (*sessionSQL, error) {
	prefs := s.Preferences
	if prefs == nil {
		prefs = map[string]string{}
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}
	return &sessionSQL{
		ID:          s.ID,
		Preferences: string(data),
		Turns:       s.Turns,
		CreatedAt:   dbTime(s.CreatedAt),
		UpdatedAt:   dbTime(s.UpdatedAt),
	}, nil
}

func (r *SessionRepository) toDomain(row *sessionSQL) (*domain.Session, error) {
	prefs := map[string]string{}
	if err := json.Unmarshal([]byte(row.Preferences), &prefs); err != nil {
		return nil, fmt.Errorf("unmarshal preferences of session %s: %w", row.ID, err)
	}
	return &domain.Session{
		ID:          row.ID,
		Preferences: prefs,
		Turns:       row.Turns,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}, nil
}
