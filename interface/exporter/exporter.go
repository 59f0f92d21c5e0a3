package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	METRIC_ERROR_COUNT     = "error_count"
	METRIC_OPERATION_COUNT = "operation_count"

	METRIC_STAKED_TOTAL         = "staked_total"
	METRIC_INTEREST_RESERVE     = "interest_reserve"
	METRIC_DISTRIBUTION_RESERVE = "distribution_reserve"
	METRIC_ACTIVE_STAKERS       = "active_stakers"
)

var (
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
)

func Init() {

	// --- Static Metrics: the metrics which are not depended on running configuration

	// Create metric spaces
	counters = make(map[string]prometheus.Counter)
	gauges = make(map[string]prometheus.Gauge)

	// Register metrics
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "staking",
		Subsystem: "ledger",
		Name:      METRIC_ERROR_COUNT,
		Help:      "Counts the number of failed operations",
	})
	prometheus.MustRegister(counter)
	counters[METRIC_ERROR_COUNT] = counter

	counter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "staking",
		Subsystem: "ledger",
		Name:      METRIC_OPERATION_COUNT,
		Help:      "Counts the number of committed operations",
	})
	prometheus.MustRegister(counter)
	counters[METRIC_OPERATION_COUNT] = counter

	for name, help := range map[string]string{
		METRIC_STAKED_TOTAL:         "Total staked principal in base units",
		METRIC_INTEREST_RESERVE:     "Settlement units reserved for pending interest",
		METRIC_DISTRIBUTION_RESERVE: "Settlement units reserved for pending distributions",
		METRIC_ACTIVE_STAKERS:       "Number of addresses with a live stake",
	} {
		gauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "staking",
			Subsystem: "ledger",
			Name:      name,
			Help:      help,
		})
		prometheus.MustRegister(gauge)
		gauges[name] = gauge
	}
}

func GetCounter(name string) prometheus.Counter {
	return counters[name]
}

func GetGauge(name string) prometheus.Gauge {
	return gauges[name]
}

func IncErrorCount() {
	counters[METRIC_ERROR_COUNT].Inc()
}

func IncOperationCount() {
	counters[METRIC_OPERATION_COUNT].Inc()
}

func SetGauge(name string, value float64) {
	gauges[name].Set(value)
}
