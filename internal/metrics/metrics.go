package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ContainersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reuseloop_containers_created_total",
		Help: "Total number of containers added to the pool.",
	})

	ContainerTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reuseloop_container_transitions_total",
		Help: "Total number of container status changes, by target status.",
	},
		[]string{"status"},
	)

	PointsCreditedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reuseloop_points_credited_total",
		Help: "Total points credited to customers, by transaction type.",
	},
		[]string{"type"},
	)

	PointsDebitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reuseloop_points_debited_total",
		Help: "Total points debited from customers, by transaction type.",
	},
		[]string{"type"},
	)

	OrdersDeliveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reuseloop_orders_delivered_total",
		Help: "Total number of orders marked delivered.",
	})

	RequestsFulfilledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reuseloop_requests_fulfilled_total",
		Help: "Total number of replenishment requests fulfilled.",
	})

	HoursAccruedContainers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reuseloop_hours_accrued_containers_total",
		Help: "Total container-hours added by the accrual job.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reuseloop_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)
)
