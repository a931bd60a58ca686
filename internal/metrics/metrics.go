// Package metrics define las métricas Prometheus de la API de la clínica.
// Todas se registran en el registry por defecto al importar el paquete;
// /metrics las expone vía promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// Fuentes de un rechazo por doble reserva.
const (
	ConflictSourcePrecheck = "precheck"
	ConflictSourceStore    = "store"
	ConflictSourceLock     = "lock"
)

// ── HTTP ─────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal cuenta requests por método, patrón de ruta chi y status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

// ── Turnos ───────────────────────────────────────────────────────────────────

var AppointmentsScheduledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_scheduled_total",
		Help:      "Total number of appointments successfully scheduled.",
	},
)

// AppointmentConflictsTotal cuenta rechazos por doble reserva.
// Label source: precheck | store | lock.
var AppointmentConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_conflicts_total",
		Help:      "Total number of scheduling requests rejected as double-bookings.",
	},
	[]string{"source"},
)

var AppointmentsCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_cancelled_total",
		Help:      "Total number of appointments cancelled.",
	},
)

// ── Registros ────────────────────────────────────────────────────────────────

// RecordsCreatedTotal cuenta altas por entidad (client, animal, veterinarian).
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created, by entity.",
	},
	[]string{"entity"},
)
