package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitistack/vyos-dhcp-operator/internal/services/vyos"
	"github.com/vitistack/vyos-dhcp-operator/internal/util/subnet"
)

// Config controls request defaults of the API handlers.
type Config struct {
	// DefaultSubnet is used when a request omits the subnet.
	DefaultSubnet string
	// RequestTimeout bounds a single handler, including the router round-trip.
	RequestTimeout time.Duration
}

// API maps HTTP requests onto the VyOS DHCP service.
type API struct {
	service  *vyos.Service
	config   Config
	validate *validator.Validate
}

func New(service *vyos.Service, cfg Config) (*API, error) {
	if service == nil || service.Client == nil {
		return nil, errors.New("vyos service is required")
	}
	if cfg.DefaultSubnet != "" {
		normalized, err := subnet.Normalize(cfg.DefaultSubnet)
		if err != nil {
			return nil, err
		}
		cfg.DefaultSubnet = normalized
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("mappingname", validateMappingName); err != nil {
		return nil, err
	}
	return &API{
		service:  service,
		config:   cfg,
		validate: validate,
	}, nil
}

// Routes constructs the chi router with the lease API, health and metrics endpoints.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(a.config.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/vyos", func(r chi.Router) {
		r.Get("/leases", a.handleLeases)
		r.Get("/mapping", a.handleMappings)
		r.Post("/reserve", a.handleReserve)
		r.Post("/deleteMap", a.handleDeleteMapping)
	})

	return r
}
