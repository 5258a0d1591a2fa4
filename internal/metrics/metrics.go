// Package metrics declares the Prometheus instruments for the booking core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tripflow_bookings_created_total",
	Help: "Bookings persisted to the ledger.",
})

var BookingsModified = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tripflow_bookings_modified_total",
	Help: "Successful booking modifications.",
})

var BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tripflow_bookings_cancelled_total",
	Help: "Bookings transitioned to cancelled (idempotent repeats excluded).",
})

var PaymentsSimulated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tripflow_payments_simulated_total",
	Help: "Checkout payment simulations run to completion.",
})

var TicketDecodes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tripflow_ticket_decodes_total",
	Help: "Ticket payload decode attempts by result.",
}, []string{"result"})
