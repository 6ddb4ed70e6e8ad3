package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	EntityMutations *prometheus.CounterVec
	UsersCreated    prometheus.Counter
	Logins          prometheus.Counter
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EntityMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "angodata_entity_mutations_total",
			Help: "Total number of create/update/delete operations by entity type",
		}, []string{"entity", "op"}),
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "angodata_users_created_total",
			Help: "Total number of users registered",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "angodata_logins_total",
			Help: "Total number of successful logins",
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "angodata_cache_hits_total",
			Help: "Total number of response cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "angodata_cache_misses_total",
			Help: "Total number of response cache misses",
		}),
	}
}

// IncrementMutation records one mutating operation on an entity type.
func (m *Metrics) IncrementMutation(entity, op string) {
	if m == nil {
		return
	}
	m.EntityMutations.WithLabelValues(entity, op).Inc()
}
