package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet_discovery/internal/models"
)

type memCache struct {
	data   map[string][]byte
	getErr error
	sets   int
	dels   int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	b, ok := c.data[key]
	return b, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	c.sets++
	c.data[key] = val
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.dels++
	delete(c.data, key)
	return nil
}

type countingCompanyRepo struct {
	companies []models.Company
	lists     int
	listErr   error
	upsertErr error
}

func (r *countingCompanyRepo) List(context.Context) ([]models.Company, error) {
	r.lists++
	return r.companies, r.listErr
}
func (r *countingCompanyRepo) Get(_ context.Context, id int) (models.Company, error) {
	for _, c := range r.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Company{}, ErrCompanyNotFound
}
func (r *countingCompanyRepo) Create(_ context.Context, c models.Company) (int, error) {
	c.ID = len(r.companies) + 1
	r.companies = append(r.companies, c)
	return c.ID, nil
}
func (r *countingCompanyRepo) UpsertAll(_ context.Context, cs []models.Company) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.companies = append(r.companies, cs...)
	return nil
}

func TestCachedCompanyRepo_ServesSnapshotAndInvalidates(t *testing.T) {
	inner := &countingCompanyRepo{companies: []models.Company{{ID: 1, Name: "Alpha", RepService: models.ServiceWalk}}}
	cache := newMemCache()
	repo := NewCachedCompanyRepo(inner, cache, time.Minute)
	c := context.Background()

	first, err := repo.List(c)
	if err != nil || len(first) != 1 {
		t.Fatalf("List() = %v, %v", first, err)
	}
	second, _ := repo.List(c)
	if inner.lists != 1 {
		t.Fatalf("second List must be served from cache, inner called %d times", inner.lists)
	}
	if second[0].Name != "Alpha" || second[0].RepService != models.ServiceWalk {
		t.Fatalf("cached snapshot mismatch: %+v", second)
	}

	if _, err := repo.Create(c, models.Company{Name: "Bravo"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cache.dels != 1 {
		t.Fatalf("Create must invalidate the snapshot")
	}
	third, _ := repo.List(c)
	if len(third) != 2 || inner.lists != 2 {
		t.Fatalf("expected a fresh listing after invalidation, got %d companies, %d inner lists", len(third), inner.lists)
	}
}

func TestCachedCompanyRepo_CacheErrorFallsThrough(t *testing.T) {
	inner := &countingCompanyRepo{companies: []models.Company{{ID: 1}}}
	cache := newMemCache()
	cache.getErr = errors.New("connection refused")
	repo := NewCachedCompanyRepo(inner, cache, 0)

	got, err := repo.List(context.Background())
	if err != nil || len(got) != 1 || inner.lists != 1 {
		t.Fatalf("List() = %v, %v (inner lists %d)", got, err, inner.lists)
	}
}

func TestCachedCompanyRepo_InnerErrorNotCached(t *testing.T) {
	inner := &countingCompanyRepo{listErr: errors.New("db down")}
	cache := newMemCache()
	repo := NewCachedCompanyRepo(inner, cache, time.Minute)

	if _, err := repo.List(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if cache.sets != 0 {
		t.Fatalf("failed listing must not be cached")
	}
}

func TestCachedCompanyRepo_UpsertAllInvalidatesOnlyOnSuccess(t *testing.T) {
	inner := &countingCompanyRepo{companies: []models.Company{{ID: 1, Name: "Alpha"}}}
	cache := newMemCache()
	repo := NewCachedCompanyRepo(inner, cache, time.Minute)
	c := context.Background()

	if _, err := repo.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}

	inner.upsertErr = errors.New("disk full")
	if err := repo.UpsertAll(c, []models.Company{{ID: 2, Name: "Bravo"}}); err == nil {
		t.Fatalf("expected upsert error")
	}
	if cache.dels != 0 {
		t.Fatalf("failed import must keep the snapshot")
	}

	inner.upsertErr = nil
	if err := repo.UpsertAll(c, []models.Company{{ID: 2, Name: "Bravo"}}); err != nil {
		t.Fatalf("UpsertAll: %v", err)
	}
	if cache.dels != 1 {
		t.Fatalf("UpsertAll must invalidate the snapshot")
	}
	got, _ := repo.List(c)
	if len(got) != 2 || inner.lists != 2 {
		t.Fatalf("expected a fresh listing, got %d companies, %d inner lists", len(got), inner.lists)
	}
}
