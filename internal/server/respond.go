package server

import (
	"encoding/json"
	"net/http"
	"time"
)

const contentTypeJSON = "application/json; charset=utf-8"

// timestampLayout is ISO-8601 in UTC with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z"

type homeResponse struct {
	Message   string    `json:"message"`
	Endpoints endpoints `json:"endpoints"`
}

type endpoints struct {
	Status  string `json:"status"`
	Health  string `json:"health"`
	Latency string `json:"latency"`
	Error   string `json:"error"`
}

type statusResponse struct {
	Status         string         `json:"status"`
	Message        string         `json:"message"`
	Timestamp      string         `json:"timestamp"`
	Uptime         float64        `json:"uptime"`
	Version        string         `json:"version"`
	Environment    string         `json:"environment"`
	Release        release        `json:"release"`
	Infrastructure infrastructure `json:"infrastructure"`
}

type release struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

type infrastructure struct {
	Platform string `json:"platform"`
	Cluster  string `json:"cluster"`
	Service  string `json:"service"`
	Region   string `json:"region"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var (
	notFoundBody = errorResponse{
		Error:   "Rota não encontrada",
		Message: "Esta rota não existe na aplicação",
	}
	simulatedErrorBody = errorResponse{
		Error:   "Erro interno simulado",
		Message: "Este endpoint sempre retorna erro 500.",
	}
	internalErrorBody = errorResponse{
		Error:   "Erro interno",
		Message: "Ocorreu um erro inesperado.",
	}
)

// fallbackBody is written when a payload cannot be encoded
var fallbackBody = []byte(`{"error":"Erro interno","message":"Ocorreu um erro inesperado."}`)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body = fallbackBody
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
