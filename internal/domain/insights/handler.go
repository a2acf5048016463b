package insights

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-adoption-insights/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Get("/users/{userID}/recommendations", recommendationsHandler(svc, log))
	r.Get("/users/{userID}/connections", connectionsHandler(svc, log))
	r.Get("/users/{userID}/engagement", engagementHandler(svc, log))
	r.Get("/pets/adoptable", adoptableHandler(svc, log))
	r.Get("/pets/low-engagement", lowEngagementHandler(svc, log))
	r.Get("/forecast/demand", forecastHandler(svc, log))
}

// recommendationsHandler godoc
// @Summary Recomendar mascotas a un usuario
// @Description Rankea mascotas disponibles por overlap entre sus tags y los tags preferidos del usuario. Excluye mascotas ya adoptadas por el usuario. Puede devolver menos de `limit` por el filtro final de disponibilidad.
// @Tags insights
// @Produce json
// @Param userID path int true "ID del usuario"
// @Param limit query int false "Máximo de resultados (default 5)"
// @Success 200 {array} catalog.Pet
// @Failure 400 {string} string "invalid user id / invalid limit"
// @Failure 404 {string} string "user not found"
// @Failure 503 {string} string "store unavailable"
// @Router /users/{userID}/recommendations [get]
func recommendationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseUserID(w, r)
		if !ok {
			return
		}
		limit, ok := parseLimit(w, r)
		if !ok {
			return
		}

		pets, found, err := svc.RecommendPets(r.Context(), userID, limit)
		if err != nil {
			writeError(w, log, err)
			return
		}
		if !found {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, pets)
	}
}

// adoptableHandler godoc
// @Summary Mascotas más adoptables
// @Description Score = cantidad de likes + rating promedio (sin ponderar). Solo mascotas disponibles.
// @Tags insights
// @Produce json
// @Param limit query int false "Máximo de resultados (default 5)"
// @Success 200 {array} catalog.Pet
// @Failure 400 {string} string "invalid limit"
// @Failure 503 {string} string "store unavailable"
// @Router /pets/adoptable [get]
func adoptableHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(w, r)
		if !ok {
			return
		}

		pets, err := svc.MostAdoptablePets(r.Context(), limit)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, pets)
	}
}

// connectionsHandler godoc
// @Summary Usuarios similares (cross-store)
// @Description Suma likes compartidos, tags preferidos compartidos, adopciones compartidas y feedback compartido.
// @Tags insights
// @Produce json
// @Param userID path int true "ID del usuario"
// @Param limit query int false "Máximo de resultados (default 5)"
// @Success 200 {array} catalog.User
// @Failure 400 {string} string "invalid user id / invalid limit"
// @Failure 404 {string} string "user not found"
// @Failure 503 {string} string "store unavailable"
// @Router /users/{userID}/connections [get]
func connectionsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseUserID(w, r)
		if !ok {
			return
		}
		limit, ok := parseLimit(w, r)
		if !ok {
			return
		}

		users, found, err := svc.UserConnections(r.Context(), userID, limit)
		if err != nil {
			writeError(w, log, err)
			return
		}
		if !found {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// lowEngagementHandler godoc
// @Summary Mascotas con baja interacción
// @Description Mascotas disponibles sin likes y sin feedback, ordenadas por id ascendente.
// @Tags insights
// @Produce json
// @Success 200 {array} catalog.Pet
// @Failure 503 {string} string "store unavailable"
// @Router /pets/low-engagement [get]
func lowEngagementHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pets, err := svc.LowEngagementPets(r.Context())
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, pets)
	}
}

// engagementHandler godoc
// @Summary Resumen de actividad de un usuario
// @Tags insights
// @Produce json
// @Param userID path int true "ID del usuario"
// @Success 200 {object} EngagementReport
// @Failure 400 {string} string "invalid user id"
// @Failure 404 {string} string "user not found"
// @Failure 503 {string} string "store unavailable"
// @Router /users/{userID}/engagement [get]
func engagementHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseUserID(w, r)
		if !ok {
			return
		}

		rep, found, err := svc.UserEngagement(r.Context(), userID)
		if err != nil {
			writeError(w, log, err)
			return
		}
		if !found {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// forecastHandler godoc
// @Summary Demanda vs oferta por raza y por tag
// @Description ratio = demand / supply; `null` cuando supply es 0.
// @Tags insights
// @Produce json
// @Success 200 {object} Forecast
// @Failure 503 {string} string "store unavailable"
// @Router /forecast/demand [get]
func forecastHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fc, err := svc.ForecastDemand(r.Context())
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, fc)
	}
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "userID")), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return DefaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case IsStoreError(err):
		log.Error("store unavailable", map[string]any{"err": err})
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	default:
		log.Error("internal error", map[string]any{"err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado en handlers de distintos módulos (insights/registry)
// para no crear un paquete de helpers demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
