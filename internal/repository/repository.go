package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet_discovery/internal/models"
)

// ErrCompanyNotFound is returned by lookups of a missing company id.
var ErrCompanyNotFound = errors.New("company not found")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// CompanyRepo is the source of company listings.
type CompanyRepo interface {
	List(ctx context.Context) ([]models.Company, error)
	Get(ctx context.Context, id int) (models.Company, error)
	Create(ctx context.Context, c models.Company) (int, error)
	UpsertAll(ctx context.Context, companies []models.Company) error
}

// EventFilter narrows a selection event listing. Zero values mean "any".
type EventFilter struct {
	From      time.Time
	To        time.Time
	Type      string
	SessionID string
}

type EventRepo interface {
	Append(ctx context.Context, e models.SelectionEvent) error
	List(ctx context.Context, f EventFilter) ([]models.SelectionEvent, error)
}

type Repository struct {
	Companies CompanyRepo
	EventRepo EventRepo
	Auth      Authorization
}

// NewRepository wires the SQLite repositories. A non-nil cache puts the company listing behind it.
func NewRepository(db *sql.DB, cache SnapshotCache, cacheTTL time.Duration) *Repository {
	var companies CompanyRepo = NewCompanySQLite(db)
	if cache != nil {
		companies = NewCachedCompanyRepo(companies, cache, cacheTTL)
	}
	return &Repository{
		Companies: companies,
		EventRepo: NewEventSQLite(db),
		Auth:      NewAdminRepository(db),
	}
}
