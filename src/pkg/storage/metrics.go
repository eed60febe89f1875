package storage

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_resolve_total",
		Help: "Path resolutions by entity kind and winning tier.",
	}, []string{"kind", "source"})

	resolveMissTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_resolve_miss_total",
		Help: "Path resolutions that exhausted all three tiers.",
	}, []string{"kind"})

	indexCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storage_index_cache_hits_total",
		Help: "Index loads served from the in-memory TTL cache.",
	})

	indexCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storage_index_cache_misses_total",
		Help: "Index loads that went to disk.",
	})

	atomicWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storage_atomic_writes_total",
		Help: "Completed write-temp-then-rename operations.",
	})

	ledgerScanSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storage_ledger_scan_duration_seconds",
		Help:    "Duration of full transaction directory scans.",
		Buckets: prometheus.DefBuckets,
	})
)

// ObserveLedgerScan records the wall time of one ledger range scan.
func ObserveLedgerScan(d time.Duration) {
	ledgerScanSeconds.Observe(d.Seconds())
}
