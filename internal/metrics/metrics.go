package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReconcileOutcomes counts reconciliations by outcome.
var ReconcileOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "attendance_reconcile_outcomes_total",
	Help: "Reconciliation results by outcome (checked_in, checked_out, already_complete).",
}, []string{"outcome"})

// RecordsCleared counts bulk clears of the record set.
var RecordsCleared = promauto.NewCounter(prometheus.CounterOpts{
	Name: "attendance_records_cleared_total",
	Help: "Number of times the record set was bulk-cleared.",
})
