package store

import (
	"context"
	"errors"
	"time"

	"velora_back_end/internal/models"

	"github.com/gocql/gocql"
)

type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
}

// ScyllaUserStore écrit chaque utilisateur dans deux tables : users
// (clé user_id) et users_by_email (clé email) pour le login.
type ScyllaUserStore struct {
	session *gocql.Session
}

func NewScyllaUserStore(session *gocql.Session) *ScyllaUserStore {
	return &ScyllaUserStore{session: session}
}

func (s *ScyllaUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	u := models.User{ID: id}

	err := s.session.Query(`
		SELECT email, password, name, role, provider, provider_id
		FROM users WHERE user_id = ?`, id,
	).WithContext(ctx).Scan(&u.Email, &u.Password, &u.Name, &u.Role, &u.Provider, &u.ProviderID)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *ScyllaUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var userID string
	err := s.session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, email).
		WithContext(ctx).Scan(&userID)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, userID)
}

func (s *ScyllaUserStore) Insert(ctx context.Context, u *models.User) error {
	now := time.Now()

	if err := s.session.Query(`
		INSERT INTO users (user_id, email, password, name, role, provider, provider_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Password, u.Name, u.Role, u.Provider, u.ProviderID, now, now,
	).WithContext(ctx).Exec(); err != nil {
		return err
	}

	return s.session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
		u.Email, u.ID,
	).WithContext(ctx).Exec()
}
