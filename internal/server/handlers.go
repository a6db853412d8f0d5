package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wesleyorama2/cicd-template/internal/config"
)

// DefaultDelayMillis is used by /latency when ms is missing or invalid
const DefaultDelayMillis int64 = 5000

// maxDelayMillis is the largest delay representable as a time.Duration
const maxDelayMillis = int64(math.MaxInt64 / int64(time.Millisecond))

const platform = "AWS ECS Fargate"

type handlers struct {
	env     config.Source
	clock   Clock
	started time.Time
	version string
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, homeResponse{
		Message: "Bem-vindo à aplicação de template CI/CD!",
		Endpoints: endpoints{
			Status:  "/status",
			Health:  "/health",
			Latency: "/latency",
			Error:   "/error",
		},
	})
}

func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	snap := config.Load(h.env)

	writeJSON(w, http.StatusOK, statusResponse{
		Status:      "OK",
		Message:     "Aplicacao em execucao",
		Timestamp:   formatTimestamp(now),
		Uptime:      now.Sub(h.started).Seconds(),
		Version:     h.version,
		Environment: snap.Environment,
		Release: release{
			Version: snap.ReleaseVersion,
			Commit:  snap.GitCommit,
		},
		Infrastructure: infrastructure{
			Platform: platform,
			Cluster:  snap.ECSCluster,
			Service:  snap.ECSService,
			Region:   snap.AWSRegion,
		},
	})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: formatTimestamp(h.clock.Now()),
	})
}

func (h *handlers) latency(w http.ResponseWriter, r *http.Request) {
	ms := parseDelay(r.URL.Query().Get("ms"))

	// The client went away; there is nobody left to answer.
	if err := h.clock.Sleep(r.Context(), time.Duration(ms)*time.Millisecond); err != nil {
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Resposta enviada após %dms de latência simulada.", ms),
	})
}

func (h *handlers) simulatedError(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusInternalServerError, simulatedErrorBody)
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, notFoundBody)
}

// parseDelay reads the ms query value. Surrounding whitespace is ignored
// (a "+" in the query string decodes to a space). Anything else that is not
// a non-negative base-10 integer small enough to be a time.Duration yields
// the default.
func parseDelay(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultDelayMillis
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms < 0 || ms > maxDelayMillis {
		return DefaultDelayMillis
	}
	return ms
}
