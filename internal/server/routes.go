package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wesleyorama2/cicd-template/internal/config"
)

// Options holds the read-only dependencies of the router
type Options struct {
	// Env is consulted on every /status request
	Env config.Source
	// Clock defaults to SystemClock
	Clock Clock
	// Started is the process start time used for uptime
	Started time.Time
	// Version is the build version; empty means config.DefaultVersion
	Version string
	// Logger receives the access log and recovered panics; nil disables both
	Logger *log.Logger
}

// NewRouter builds the HTTP handler serving the introspection endpoints.
// Only GET is routed; any other method, like any unknown path, gets the 404 body.
func NewRouter(opts Options) http.Handler {
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.Env == nil {
		opts.Env = config.EnvSource{}
	}
	if opts.Started.IsZero() {
		opts.Started = opts.Clock.Now()
	}
	if opts.Version == "" {
		opts.Version = config.DefaultVersion
	}

	h := &handlers{
		env:     opts.Env,
		clock:   opts.Clock,
		started: opts.Started,
		version: opts.Version,
	}

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  opts.Logger,
			NoColor: true,
		}))
	}
	r.Use(recoverer(opts.Logger))

	r.Get("/", h.home)
	r.Get("/status", h.status)
	r.Get("/health", h.health)
	r.Get("/latency", h.latency)
	r.Get("/error", h.simulatedError)

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.notFound)

	return r
}
