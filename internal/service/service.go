package service

import (
	"context"
	"time"

	"pet_discovery/internal/discovery"
	"pet_discovery/internal/logger"
	"pet_discovery/internal/models"
	"pet_discovery/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Catalog exposes the closed set of service categories.
type Catalog interface {
	Services() []models.Service
}

// Discovery owns the mounted views ("sessions") and every interaction on them.
type Discovery interface {
	Mount(ctx context.Context, pageSize int) (ViewState, error)
	Unmount(ctx context.Context, sessionID string) error
	View(ctx context.Context, sessionID string) (ViewState, error)
	SetFilter(ctx context.Context, sessionID string, f discovery.FilterState) (ViewState, error)
	SetPage(ctx context.Context, sessionID string, page int) (ViewState, error)
	SelectFromList(ctx context.Context, sessionID string, companyID int) (ViewState, error)
	MapClick(ctx context.Context, sessionID string, companyID int) (ViewState, error)
	ClearSelection(ctx context.Context, sessionID string) (ViewState, error)
	Dismiss(ctx context.Context, sessionID string) error
	MarkersRendered(ctx context.Context, sessionID string, companyIDs []int) (int, error)
	Detail(ctx context.Context, sessionID string) (discovery.Detail, bool, error)
	Attach(sessionID string, remote Remote) (func(), error)
}

// EventLog exposes the append-only selection log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.SelectionEvent, error)
}

// Companies covers admin writes to the company listing.
type Companies interface {
	Create(ctx context.Context, c models.Company) (int, error)
}

// Reaper unmounts idle sessions in the background.
// Stop via context cancellation in main() for graceful shutdown.
type Reaper interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Authorization
	Catalog
	Discovery
	EventLog
	Companies
	Reaper
}

type Options struct {
	PageSize    int
	SessionIdle time.Duration
	SigningKey  string
	TokenTTL    time.Duration
	Logger      *logger.Logger
}

func NewService(repos *repository.Repository, opts Options) *Service {
	d := NewDiscoveryService(repos.Companies, repos.EventRepo, DiscoveryOptions{
		PageSize: opts.PageSize,
		Logger:   opts.Logger,
	})
	return &Service{
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
		Catalog:       NewCatalogService(),
		Discovery:     d,
		EventLog:      NewEventLogService(repos.EventRepo),
		Companies:     NewCompanyService(repos.Companies),
		Reaper:        NewReaperService(d, opts.SessionIdle),
	}
}
