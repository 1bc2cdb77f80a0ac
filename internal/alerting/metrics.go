package alerting

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// alertsEmitted counts dispatched notifications, partitioned by their
// notification type.
var alertsEmitted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "alerts_emitted_total",
		Help: "How many notifications have been dispatched, partitioned by notification type.",
	},
	[]string{"type"},
)
