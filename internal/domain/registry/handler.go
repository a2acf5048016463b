package registry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-adoption-insights/internal/platform/logger"
	"pet-adoption-insights/internal/ports/graph"

	"github.com/go-chi/chi/v5"
)

// HeaderPartialWrite se agrega cuando el registro se creó pero falló alguna
// escritura secundaria.
const HeaderPartialWrite = "X-Partial-Write"

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Post("/users", createUserHandler(svc, log))
	r.Post("/shelters", createShelterHandler(svc, log))
	r.Post("/pets", createPetHandler(svc, log))
	r.Post("/adoptions", createAdoptionHandler(svc, log))
	r.Post("/likes", likeHandler(svc, log))
	r.Post("/feedback", feedbackHandler(svc, log))
	r.Post("/friendships", friendshipHandler(svc, log))
	r.Post("/users/{userID}/preferences", preferencesHandler(svc, log))
	r.Post("/breeds/similar", similarBreedsHandler(svc, log))
}

// createUserHandler godoc
// @Summary Crear usuario
// @Description Escribe en el store relacional y crea el nodo User en el grafo.
// @Tags registry
// @Accept json
// @Produce json
// @Param body body CreateUserInput true "Usuario"
// @Success 201 {object} catalog.User
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /users [post]
func createUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserInput
		if !decode(w, r, &req) {
			return
		}
		u, err := svc.CreateUser(r.Context(), req)
		if !handleWriteErr(w, log, err) {
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

// createShelterHandler godoc
// @Summary Crear refugio
// @Tags registry
// @Accept json
// @Produce json
// @Param body body CreateShelterInput true "Refugio"
// @Success 201 {object} catalog.Shelter
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /shelters [post]
func createShelterHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateShelterInput
		if !decode(w, r, &req) {
			return
		}
		sh, err := svc.CreateShelter(r.Context(), req)
		if !handleWriteErr(w, log, err) {
			return
		}
		writeJSON(w, http.StatusCreated, sh)
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Registro relacional + nodo Pet (OF_BREED, LOCATED_AT) + perfil documental opcional con HAS_TAG.
// @Tags registry
// @Accept json
// @Produce json
// @Param body body CreatePetInput true "Mascota"
// @Success 201 {object} catalog.Pet
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePetInput
		if !decode(w, r, &req) {
			return
		}
		p, err := svc.CreatePet(r.Context(), req)
		if !handleWriteErr(w, log, err) {
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

// createAdoptionHandler godoc
// @Summary Registrar adopción
// @Description No cambia el status de la mascota.
// @Tags registry
// @Accept json
// @Produce json
// @Param body body CreateAdoptionInput true "Adopción"
// @Success 201 {object} catalog.Adoption
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "user or pet not found"
// @Router /adoptions [post]
func createAdoptionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAdoptionInput
		if !decode(w, r, &req) {
			return
		}
		a, err := svc.CreateAdoption(r.Context(), req)
		if !handleWriteErr(w, log, err) {
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// likeHandler godoc
// @Summary Registrar LIKE
// @Description Crea LIKES y deriva PREFERS_TAG desde los tags del perfil.
// @Tags registry
// @Accept json
// @Param body body LikeInput true "Like"
// @Success 204
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "user or pet not found"
// @Router /likes [post]
func likeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LikeInput
		if !decode(w, r, &req) {
			return
		}
		if !handleWriteErr(w, log, svc.RecordLike(r.Context(), req)) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// feedbackHandler godoc
// @Summary Enviar feedback
// @Description rating 1..5; con rating >= 4 se derivan tags preferidos.
// @Tags registry
// @Accept json
// @Produce json
// @Param body body FeedbackInput true "Feedback"
// @Success 201 {object} catalog.Feedback
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "user or pet not found"
// @Router /feedback [post]
func feedbackHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FeedbackInput
		if !decode(w, r, &req) {
			return
		}
		f, err := svc.SubmitFeedback(r.Context(), req)
		if !handleWriteErr(w, log, err) {
			return
		}
		writeJSON(w, http.StatusCreated, f)
	}
}

// friendshipHandler godoc
// @Summary Crear amistad
// @Tags registry
// @Accept json
// @Param body body FriendshipInput true "Amistad"
// @Success 204
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "user not found"
// @Router /friendships [post]
func friendshipHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FriendshipInput
		if !decode(w, r, &req) {
			return
		}
		if !handleWriteErr(w, log, svc.AddFriendship(r.Context(), req)) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// preferencesHandler godoc
// @Summary Agregar tags preferidos
// @Tags registry
// @Accept json
// @Produce json
// @Param userID path int true "ID del usuario"
// @Param body body PreferenceInput true "Tags"
// @Success 200 {array} string
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "user not found"
// @Router /users/{userID}/preferences [post]
func preferencesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "userID")), 10, 64)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		var req PreferenceInput
		if !decode(w, r, &req) {
			return
		}
		tags, err := svc.PreferTags(r.Context(), userID, req)
		if !handleWriteErr(w, log, err) {
			return
		}
		writeJSON(w, http.StatusOK, tags)
	}
}

// similarBreedsHandler godoc
// @Summary Enlazar razas similares (SIMILAR_BREED)
// @Tags registry
// @Accept json
// @Param body body SimilarBreedsInput true "Razas"
// @Success 204
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /breeds/similar [post]
func similarBreedsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SimilarBreedsInput
		if !decode(w, r, &req) {
			return
		}
		if !handleWriteErr(w, log, svc.LinkSimilarBreeds(r.Context(), req)) {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

// handleWriteErr escribe la respuesta de error y devuelve false si no hay que
// seguir. Una escritura parcial sigue adelante con el header de aviso.
func handleWriteErr(w http.ResponseWriter, log logger.Logger, err error) bool {
	var pw *PartialWriteError
	switch {
	case err == nil:
		return true
	case errors.As(err, &pw):
		w.Header().Set(HeaderPartialWrite, pw.Error())
		return true
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, graph.ErrNodeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error("write failed", map[string]any{"err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
