package payment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentsScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "treasury_payments_scheduled_total",
		Help: "Total number of payments accepted by the registry",
	})

	paymentsExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "treasury_payments_executed_total",
		Help: "Total number of payments executed",
	})

	batchSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "treasury_batch_payments_skipped_total",
		Help: "Total number of batch entries skipped as ineligible",
	})
)
