package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet_discovery/internal/models"
)

type CompanySQLite struct {
	db *sql.DB
}

func NewCompanySQLite(db *sql.DB) *CompanySQLite {
	return &CompanySQLite{db: db}
}

var _ CompanyRepo = (*CompanySQLite)(nil)

const (
	selectCompaniesSQL = `
		SELECT id, name, road_addr, tel, rep_service, description, x, y, created_by
		FROM companies ORDER BY id ASC
	`

	selectCompanySQL = `
		SELECT id, name, road_addr, tel, rep_service, description, x, y, created_by
		FROM companies WHERE id = ?
	`

	insertCompanySQL = `
		INSERT INTO companies (name, road_addr, tel, rep_service, description, x, y, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	upsertCompanySQL = `
		INSERT INTO companies (id, name, road_addr, tel, rep_service, description, x, y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			road_addr=excluded.road_addr,
			tel=excluded.tel,
			rep_service=excluded.rep_service,
			description=excluded.description,
			x=excluded.x,
			y=excluded.y
	`
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(s scanner) (models.Company, error) {
	var (
		c     models.Company
		svc   string
		desc  sql.NullString
		admin sql.NullInt64
	)
	if err := s.Scan(&c.ID, &c.Name, &c.RoadAddr, &c.Tel, &svc, &desc, &c.Coordinates.X, &c.Coordinates.Y, &admin); err != nil {
		return models.Company{}, err
	}
	c.RepService = models.ServiceID(svc)
	if desc.Valid {
		c.Description = desc.String
	}
	if admin.Valid {
		c.CreatedBy = int(admin.Int64)
	}
	return c, nil
}

// nullableText stores empty descriptions as NULL.
func nullableText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// nullableID stores unset ids as NULL.
func nullableID(id int) *int {
	if id <= 0 {
		return nil
	}
	return &id
}

// List returns every company ordered by id.
func (r *CompanySQLite) List(ctx context.Context) ([]models.Company, error) {
	rows, err := r.db.QueryContext(ctx, selectCompaniesSQL)
	if err != nil {
		return nil, fmt.Errorf("select companies: %w", err)
	}
	defer rows.Close()

	out := make([]models.Company, 0, 64)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one company. Returns ErrCompanyNotFound if id does not exist.
func (r *CompanySQLite) Get(ctx context.Context, id int) (models.Company, error) {
	c, err := scanCompany(r.db.QueryRowContext(ctx, selectCompanySQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Company{}, ErrCompanyNotFound
		}
		return models.Company{}, fmt.Errorf("select company %d: %w", id, err)
	}
	return c, nil
}

// Create inserts c (ignoring c.ID) and returns the new id. c.CreatedBy is recorded when set.
func (r *CompanySQLite) Create(ctx context.Context, c models.Company) (int, error) {
	res, err := r.db.ExecContext(ctx, insertCompanySQL,
		c.Name,
		c.RoadAddr,
		c.Tel,
		string(c.RepService),
		nullableText(c.Description),
		c.Coordinates.X,
		c.Coordinates.Y,
		nullableID(c.CreatedBy),
	)
	if err != nil {
		return 0, fmt.Errorf("insert company %q: %w", c.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for company %q: %w", c.Name, err)
	}
	return int(id), nil
}

// UpsertAll inserts or replaces every company by id in a single transaction.
// Either all rows are written or none are. created_by of existing rows is kept.
func (r *CompanySQLite) UpsertAll(ctx context.Context, companies []models.Company) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, c := range companies {
		if _, err = tx.ExecContext(ctx, upsertCompanySQL,
			c.ID,
			c.Name,
			c.RoadAddr,
			c.Tel,
			string(c.RepService),
			nullableText(c.Description),
			c.Coordinates.X,
			c.Coordinates.Y,
		); err != nil {
			return fmt.Errorf("upsert company %d: %w", c.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert transaction: %w", err)
	}
	return nil
}
