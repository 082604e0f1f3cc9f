package discovery

import (
	"math"
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"pet_discovery/internal/models"
)

func TestIsOpen_HalfOpenInterval(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hour int
		want bool
	}{
		{0, false}, {8, false}, {9, true}, {12, true}, {17, true}, {18, false}, {23, false},
	}
	for _, tc := range cases {
		at := time.Date(2025, 3, 1, tc.hour, 30, 0, 0, time.Local)
		if got := IsOpen(at); got != tc.want {
			t.Errorf("IsOpen(%02d:30) = %v, want %v", tc.hour, got, tc.want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		100:  "100m",
		899:  "899m",
		999:  "999m",
		1000: "1.0km",
		1250: "1.2km",
		2500: "2.5km",
	}
	for m, want := range cases {
		if got := FormatDistance(m); got != want {
			t.Errorf("FormatDistance(%d) = %q, want %q", m, got, want)
		}
	}
}

var distanceText = regexp.MustCompile(`^[0-9]+m$`)

func TestMockMetrics_ValuesStayInRange(t *testing.T) {
	t.Parallel()

	clock := func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local) }
	m := NewMockMetricsWithSource(clock, rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		a := m.Attributes(models.Company{ID: i})
		if a.Rating < 4.0 || a.Rating > 5.0 {
			t.Fatalf("rating %v out of [4.0, 5.0]", a.Rating)
		}
		if math.Round(a.Rating*10)/10 != a.Rating {
			t.Fatalf("rating %v has more than one decimal", a.Rating)
		}
		if a.ReviewCount < 10 || a.ReviewCount > 59 {
			t.Fatalf("review count %d out of [10, 59]", a.ReviewCount)
		}
		if a.DistanceMeters < 100 || a.DistanceMeters > 899 {
			t.Fatalf("distance %d out of [100, 899]", a.DistanceMeters)
		}
		if !distanceText.MatchString(a.DistanceText) {
			t.Fatalf("distance text %q", a.DistanceText)
		}
		if !a.Open {
			t.Fatalf("10:00 must be open")
		}
	}
}

func TestMockMetrics_DefaultConstructor(t *testing.T) {
	t.Parallel()

	a := NewMockMetrics().Attributes(companyA)
	if a.DistanceText == "" || a.ReviewCount == 0 {
		t.Fatalf("attributes not populated: %+v", a)
	}
}
