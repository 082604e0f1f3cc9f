package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SelectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discovery_selections_total",
		Help: "Applied selection changes by origin (list, map, panel)",
	}, []string{"origin"})
	StaleSelectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discovery_stale_selection_total",
		Help: "List selections that could not be forwarded to a map marker",
	}, []string{"reason"})
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "discovery_active_sessions",
		Help: "Mounted discovery views",
	})
	EmptyResultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "discovery_empty_results_total",
		Help: "Filter changes that produced no companies",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "discovery_company_cache_hits_total",
		Help: "Company snapshot cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "discovery_company_cache_misses_total",
		Help: "Company snapshot cache misses",
	})
)

func init() {
	prometheus.MustRegister(SelectionsTotal)
	prometheus.MustRegister(StaleSelectionsTotal)
	prometheus.MustRegister(ActiveSessions)
	prometheus.MustRegister(EmptyResultsTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
