package discovery

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"pet_discovery/internal/models"
)

// Business hours of the placeholder open/closed status, [openHour, closeHour).
const (
	openHour  = 9
	closeHour = 18
)

// Generation ranges of the placeholder metrics (inclusive).
const (
	minRatingTenths = 40
	maxRatingTenths = 50
	minReviews      = 10
	maxReviews      = 59
	minDistanceM    = 100
	maxDistanceM    = 899
)

// DisplayAttributes are per-render presentation values of a card. They are mock data: recomputed on
// every render, not stored on the company and not authoritative.
type DisplayAttributes struct {
	DistanceMeters int     `json:"distance_m"`
	DistanceText   string  `json:"distance"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"review_count"`
	Open           bool    `json:"open"`
}

// PlaceholderMetrics produces display attributes until a real rating/distance source exists.
type PlaceholderMetrics interface {
	Attributes(c models.Company) DisplayAttributes
}

// MockMetrics draws ratings, review counts and distances at random and derives the open status
// from the local clock.
type MockMetrics struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewMockMetrics() *MockMetrics {
	return NewMockMetricsWithSource(time.Now, rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func NewMockMetricsWithSource(now func() time.Time, src rand.Source) *MockMetrics {
	return &MockMetrics{rng: rand.New(src), now: now}
}

func (m *MockMetrics) Attributes(models.Company) DisplayAttributes {
	m.mu.Lock()
	rating := float64(minRatingTenths+m.rng.IntN(maxRatingTenths-minRatingTenths+1)) / 10
	reviews := minReviews + m.rng.IntN(maxReviews-minReviews+1)
	dist := minDistanceM + m.rng.IntN(maxDistanceM-minDistanceM+1)
	m.mu.Unlock()

	return DisplayAttributes{
		DistanceMeters: dist,
		DistanceText:   FormatDistance(dist),
		Rating:         rating,
		ReviewCount:    reviews,
		Open:           IsOpen(m.now()),
	}
}

// IsOpen reports whether t's local hour falls in business hours.
func IsOpen(t time.Time) bool {
	h := t.Hour()
	return h >= openHour && h < closeHour
}

// FormatDistance renders meters as "850m" below a kilometer and "1.2km" otherwise.
func FormatDistance(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", meters)
	}
	return fmt.Sprintf("%.1fkm", float64(meters)/1000)
}
