package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store implements every repository interface on top of GORM.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrDuplicate
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var (
	_ ProfileRepository       = (*Store)(nil)
	_ FavoriteRepository      = (*Store)(nil)
	_ AlertRepository         = (*Store)(nil)
	_ BillingRepository       = (*Store)(nil)
	_ NewsRepository          = (*Store)(nil)
	_ NewsletterRepository    = (*Store)(nil)
	_ SearchHistoryRepository = (*Store)(nil)
	_ StatsRepository         = (*Store)(nil)

	_ ProfileRepository       = (*Memory)(nil)
	_ FavoriteRepository      = (*Memory)(nil)
	_ AlertRepository         = (*Memory)(nil)
	_ BillingRepository       = (*Memory)(nil)
	_ NewsRepository          = (*Memory)(nil)
	_ NewsletterRepository    = (*Memory)(nil)
	_ SearchHistoryRepository = (*Memory)(nil)
	_ StatsRepository         = (*Memory)(nil)
)
