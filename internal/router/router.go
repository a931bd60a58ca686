package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "vet-clinic-api/docs"
	mem "vet-clinic-api/internal/adapters/storage/memory"
	"vet-clinic-api/internal/domain/animals"
	"vet-clinic-api/internal/domain/appointments"
	"vet-clinic-api/internal/domain/clients"
	"vet-clinic-api/internal/domain/veterinarians"
	"vet-clinic-api/internal/middleware"
)

// Repositories es el puerto de persistencia completo que usa la API.
type Repositories struct {
	Clients       clients.Repository
	Animals       animals.Repository
	Veterinarians veterinarians.Repository
	Appointments  appointments.Repository
}

// MemoryRepositories arma los repos sobre un store en memoria.
func MemoryRepositories(s *mem.Store) Repositories {
	return Repositories{
		Clients:       s.Clients(),
		Animals:       s.Animals(),
		Veterinarians: s.Veterinarians(),
		Appointments:  s.Appointments(),
	}
}

type Options struct {
	Logger *zerolog.Logger // nil => sin logs

	// Opcional: si no viene, store en memoria (dev / tests).
	Repositories *Repositories

	// Opcional: lock distribuido de slots (Redis). nil => sin lock.
	SlotGuard appointments.SlotGuard

	// Chequeos de /health/ready por dependencia (postgres, redis, ...).
	ReadinessChecks map[string]Check
}

func NewRouter(opts Options) http.Handler {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.AccessLog)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recover)

	r.Get("/health", liveness)
	r.Get("/health/ready", readiness(opts.ReadinessChecks))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var repos Repositories
	if opts.Repositories != nil {
		repos = *opts.Repositories
	} else {
		repos = MemoryRepositories(mem.NewStore())
	}

	// Services por módulo
	clientsSvc := clients.NewService(repos.Clients, log)
	animalsSvc := animals.NewService(repos.Animals, clientsSvc, log)
	vetsSvc := veterinarians.NewService(repos.Veterinarians, log)
	appointmentsSvc := appointments.NewService(repos.Appointments, animalsSvc, vetsSvc, opts.SlotGuard, log)

	// Rutas por módulo
	clients.RegisterRoutes(r, clientsSvc, log)
	animals.RegisterRoutes(r, animalsSvc, log)
	veterinarians.RegisterRoutes(r, vetsSvc, log)
	appointments.RegisterRoutes(r, appointmentsSvc, log)

	return r
}
