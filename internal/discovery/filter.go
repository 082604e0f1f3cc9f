package discovery

import (
	"strings"

	"pet_discovery/internal/models"
)

// FilterState is the search text and category filter of a view.
type FilterState struct {
	Query   string           `json:"query"`
	Service models.ServiceID `json:"service"` // AllServices means no category filter
}

// Filter returns the companies matching query and service, in their original order.
// The match on query is a case-insensitive substring test against name or road address.
func Filter(companies []models.Company, query string, service models.ServiceID) []models.Company {
	q := strings.ToLower(query)
	out := make([]models.Company, 0, len(companies))
	for _, c := range companies {
		if matchesQuery(c, q) && matchesService(c, service) {
			out = append(out, c)
		}
	}
	return out
}

func matchesQuery(c models.Company, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), lowered) ||
		strings.Contains(strings.ToLower(c.RoadAddr), lowered)
}

func matchesService(c models.Company, service models.ServiceID) bool {
	return service == models.AllServices || c.RepService == service
}
