package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const HeaderRequestID = "X-Request-ID"

// RequestID expone en la respuesta el id que generó chimw.RequestID.
// Debe ir después de chimw.RequestID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(HeaderRequestID, id)
		}
		next.ServeHTTP(w, r)
	})
}
