package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// poolStat describes one pgxpool statistic exposed to Prometheus.
type poolStat struct {
	desc  *prometheus.Desc
	kind  prometheus.ValueType
	value func(*pgxpool.Stat) float64
}

// poolStatsCollector snapshots pool statistics on every scrape instead of
// sampling them on a timer.
type poolStatsCollector struct {
	pool    *pgxpool.Pool
	service string
	stats   []poolStat
}

func newPoolStatsCollector(pool *pgxpool.Pool, service string) *poolStatsCollector {
	gauge := func(name, help string, value func(*pgxpool.Stat) float64) poolStat {
		return poolStat{
			desc:  prometheus.NewDesc(name, help, []string{"service"}, nil),
			kind:  prometheus.GaugeValue,
			value: value,
		}
	}
	counter := func(name, help string, value func(*pgxpool.Stat) float64) poolStat {
		return poolStat{
			desc:  prometheus.NewDesc(name, help, []string{"service"}, nil),
			kind:  prometheus.CounterValue,
			value: value,
		}
	}

	return &poolStatsCollector{
		pool:    pool,
		service: service,
		stats: []poolStat{
			gauge("db_pool_acquired_connections", "Number of currently acquired connections",
				func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }),
			gauge("db_pool_idle_connections", "Number of currently idle connections",
				func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }),
			gauge("db_pool_total_connections", "Total number of connections in the pool",
				func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }),
			gauge("db_pool_max_connections", "Maximum number of connections allowed",
				func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }),
			counter("db_pool_acquire_count_total", "Total number of connection acquires",
				func(s *pgxpool.Stat) float64 { return float64(s.AcquireCount()) }),
			counter("db_pool_acquire_duration_seconds_total", "Total time spent acquiring connections in seconds",
				func(s *pgxpool.Stat) float64 { return s.AcquireDuration().Seconds() }),
			counter("db_pool_empty_acquire_count_total", "Total number of acquires that had to wait for a connection",
				func(s *pgxpool.Stat) float64 { return float64(s.EmptyAcquireCount()) }),
			counter("db_pool_new_connections_total", "Total number of new connections created",
				func(s *pgxpool.Stat) float64 { return float64(s.NewConnsCount()) }),
		},
	}
}

func (c *poolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, s := range c.stats {
		ch <- s.desc
	}
}

func (c *poolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := c.pool.Stat()
	for _, s := range c.stats {
		ch <- prometheus.MustNewConstMetric(s.desc, s.kind, s.value(snapshot), c.service)
	}
}

// RegisterPoolMetrics exposes pgxpool statistics on the default Prometheus
// registry under the given service label.
func RegisterPoolMetrics(pool *pgxpool.Pool, service string) {
	prometheus.MustRegister(newPoolStatsCollector(pool, service))
}
