package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet_discovery/internal/config"
	"pet_discovery/internal/repository"
	"pet_discovery/internal/repository/db"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const redisTimeout = 3 * time.Second

// cacheCloser is a snapshot cache the CLI owns for the length of one command.
type cacheCloser interface {
	repository.SnapshotCache
	Close() error
}

// app holds what subcommands share; it is filled in by the root PersistentPreRunE.
type app struct {
	dbPath    string
	configDir string

	// dialCache connects the snapshot cache the server reads through when redis.addr is set.
	dialCache func(ctx context.Context, cfg config.RedisConfig) (cacheCloser, error)

	db        *sql.DB
	cache     cacheCloser
	companies repository.CompanyRepo
}

func Execute() error {
	a := &app{dialCache: dialRedis}
	defer func() { _ = a.close() }()
	return newAppCmd(a).ExecuteContext(context.Background())
}

func dialRedis(ctx context.Context, cfg config.RedisConfig) (cacheCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	cache, err := repository.DialRedisCache(ctx, &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, err
	}
	return cache, nil
}

func newAppCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "discoveryctl",
		Short:         "Seed and inspect the pet-care company listing",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite file (default: db.path from config)")
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "configs", "directory holding config.yml")

	root.AddCommand(importCmd(a), listCmd(a))
	return root
}

// open connects the database and, when redis.addr is configured, the snapshot cache.
// Writes then go through the cache so the server never serves a stale listing.
func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load(a.configDir)
	if err != nil {
		return err
	}
	if a.dbPath == "" {
		a.dbPath = cfg.DB.Path
	}
	conn, err := db.InitDB(a.dbPath)
	if err != nil {
		return err
	}
	a.db = conn

	var companies repository.CompanyRepo = repository.NewCompanySQLite(conn)
	if cfg.Redis.Addr != "" && a.dialCache != nil {
		cache, err := a.dialCache(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("company cache: %w", err)
		}
		a.cache = cache
		companies = repository.NewCachedCompanyRepo(companies, cache, cfg.Redis.TTL)
	}
	a.companies = companies
	return nil
}

// close releases what open acquired. It runs even when the command failed.
func (a *app) close() error {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
		a.cache = nil
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	return errors.Join(errs...)
}
