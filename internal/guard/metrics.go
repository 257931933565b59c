package guard

import "github.com/prometheus/client_golang/prometheus"

var (
	correctionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cvard",
			Subsystem: "guard",
			Name:      "corrections_total",
			Help:      "Total corrective writes restoring host_timescale to its floor",
		},
	)

	warningsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cvard",
			Subsystem: "guard",
			Name:      "warnings_total",
			Help:      "Total warning messages broadcast to connected users",
		},
	)

	roundResetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cvard",
			Subsystem: "guard",
			Name:      "round_resets_total",
			Help:      "Total unconditional resets performed at round end",
		},
	)
)

func init() {
	prometheus.MustRegister(correctionsTotal, warningsTotal, roundResetsTotal)
}
