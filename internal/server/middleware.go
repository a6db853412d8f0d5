package server

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
)

// recoverer turns a panicking handler into a 500 with a fixed body. When the
// handler had already started its response, the panic is only logged.
func recoverer(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// net/http uses this sentinel to abort a response silently
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				if logger != nil {
					logger.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				}
				if ww.Status() == 0 {
					writeJSON(ww, http.StatusInternalServerError, internalErrorBody)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
