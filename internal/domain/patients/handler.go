package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vet-clinic-scheduling/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", createPatientHandler(svc))
		pr.Get("/", listPatientsHandler(svc))
		pr.Get("/{patientID}", getPatientHandler(svc))
	})
}

type ownerPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type createPatientRequest struct {
	Name      string       `json:"name"`
	Species   string       `json:"species" enums:"dog,cat,bird,rabbit,reptile,other"`
	Breed     string       `json:"breed"`
	Sex       string       `json:"sex" enums:"male,female,unknown"`
	BirthDate string       `json:"birth_date"` // YYYY-MM-DD opcional
	Owner     ownerPayload `json:"owner"`
	Notes     string       `json:"notes"`
}

type patientResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Species   Species      `json:"species"`
	Breed     string       `json:"breed"`
	Sex       Sex          `json:"sex"`
	BirthDate *time.Time   `json:"birth_date,omitempty"`
	Owner     ownerPayload `json:"owner"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// createPatientHandler godoc
// @Summary Registrar paciente
// @Description Registra un animal y los datos de contacto de su dueño.
// @Tags patients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPatientRequest true "Datos del paciente"
// @Success 201 {object} patientResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /patients [post]
func createPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		var req createPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Sex:       req.Sex,
			BirthDate: bd,
			Owner: Owner{
				Name:  req.Owner.Name,
				Phone: req.Owner.Phone,
				Email: req.Owner.Email,
			},
			Notes: req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

// listPatientsHandler godoc
// @Summary Listar pacientes
// @Tags patients
// @Produce json
// @Param q query string false "Texto libre sobre nombre del paciente o del dueño"
// @Param limit query int false "1-200, por defecto 50"
// @Success 200 {array} patientResponse
// @Failure 401 {string} string "unauthorized"
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		items, err := svc.List(r.Context(), r.URL.Query().Get("q"), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPatientHandler godoc
// @Summary Ficha de paciente
// @Tags patients
// @Produce json
// @Param patientID path string true "ID del paciente"
// @Success 200 {object} patientResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [get]
func getPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "patient not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Sex:       p.Sex,
		BirthDate: p.BirthDate,
		Owner: ownerPayload{
			Name:  p.Owner.Name,
			Phone: p.Owner.Phone,
			Email: p.Owner.Email,
		},
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
