package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vet-clinic-scheduling/internal/middleware"
	"vet-clinic-scheduling/internal/platform/dates"
	"vet-clinic-scheduling/internal/platform/logger"
	"vet-clinic-scheduling/internal/ports/locks"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Deps de las rutas de citas. Locker puede ser nil.
type Deps struct {
	Submitter *Submitter
	Store     Store
	Locker    locks.Locker
	LockTTL   time.Duration
	Location  *time.Location
	Validate  *validator.Validate
	Log       logger.Logger
}

func RegisterRoutes(r chi.Router, d Deps) {
	if d.Validate == nil {
		d.Validate = validator.New()
	}
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	if d.LockTTL <= 0 {
		d.LockTTL = 30 * time.Second
	}
	if d.Location == nil {
		d.Location = d.Submitter.Hours().location()
	}

	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", submitAppointmentHandler(d))
		ar.Post("/preview", previewAppointmentHandler(d))
		ar.Get("/", listAppointmentsHandler(d))
		ar.Get("/{appointmentID}", getAppointmentHandler(d))
		ar.Patch("/{appointmentID}/status", updateStatusHandler(d))
	})
}

// submitAppointmentRequest es el cuerpo que arma la consola desde el calendario.
type submitAppointmentRequest struct {
	SubjectID       string `json:"subject_id"`
	Start           string `json:"start" validate:"required"` // RFC3339 o reloj local de la clínica
	End             string `json:"end" validate:"required"`
	SplitAcrossDays bool   `json:"split_across_days"`
	Notes           string `json:"notes" validate:"max=2000"`
	Kind            string `json:"kind" validate:"omitempty,oneof=normal surgery vaccination grooming" enums:"normal,surgery,vaccination,grooming"`
	CalendarView    string `json:"calendar_view" validate:"omitempty,oneof=day week month" enums:"day,week,month"`
}

type intervalResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type appointmentResponse struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Notes     string    `json:"notes"`
	Kind      Kind      `json:"kind"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type submitResponse struct {
	State           State                 `json:"state"`
	Reason          Reason                `json:"reason,omitempty"`
	Attempted       int                   `json:"attempted"`
	Succeeded       int                   `json:"succeeded"`
	FailedIndex     *int                  `json:"failed_index,omitempty"`
	Error           string                `json:"error,omitempty"`
	RefreshRequired bool                  `json:"refresh_required"`
	Appointments    []appointmentResponse `json:"appointments"`
}

type previewResponse struct {
	OK        bool               `json:"ok"`
	Reason    Reason             `json:"reason,omitempty"`
	Intervals []intervalResponse `json:"intervals"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending arrived completed cancelled" enums:"pending,arrived,completed,cancelled"`
}

// submitAppointmentHandler godoc
// @Summary Crear cita (con split opcional por días)
// @Description Valida la solicitud según la vista del calendario, la expande en tramos (09:00-17:00 por día si split_across_days y el rango abarca más de un día) y crea cada tramo en orden. Se detiene en el primer fallo sin deshacer los tramos ya creados. Después de responder, la consola debe recargar la lista completa.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body submitAppointmentRequest true "Solicitud; start/end RFC3339 o YYYY-MM-DDTHH:MM[:SS] en hora de la clínica"
// @Success 201 {object} submitResponse
// @Failure 400 {string} string "invalid json / formato de fecha"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "subject not found"
// @Failure 409 {string} string "submission already in progress"
// @Failure 422 {object} submitResponse "rechazo: past_date, inverted_range, missing_subject"
// @Failure 502 {object} submitResponse "envío parcial"
// @Router /appointments [post]
func submitAppointmentHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		req, view, ok := decodeSubmit(w, r, d)
		if !ok {
			return
		}

		// Un envío a la vez por solicitud (mismo subject + rango + split).
		if d.Locker != nil {
			key := submissionKey(req)
			token, acquired, err := d.Locker.TryLock(r.Context(), key, d.LockTTL)
			if err != nil {
				d.Log.Error("submission lock failed", map[string]any{"key": key, "error": err})
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !acquired {
				http.Error(w, "submission already in progress", http.StatusConflict)
				return
			}
			defer func() {
				if err := d.Locker.Unlock(context.WithoutCancel(r.Context()), key, token); err != nil {
					d.Log.Warn("submission unlock failed", map[string]any{"key": key, "error": err})
				}
			}()
		}

		out, err := d.Submitter.Submit(r.Context(), req, view)
		switch {
		case errors.Is(err, ErrSubjectUnknown):
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			http.Error(w, "request cancelled", http.StatusServiceUnavailable)
			return
		case err != nil:
			d.Log.Error("appointment submit failed", map[string]any{"subject_id": req.SubjectID, "error": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		status := http.StatusCreated
		switch out.State {
		case StateRejected:
			status = http.StatusUnprocessableEntity
		case StatePartiallyFailed:
			status = http.StatusBadGateway
		}
		writeJSON(w, status, toSubmitResponse(out))
	}
}

// previewAppointmentHandler godoc
// @Summary Previsualizar tramos
// @Description Corre la validación y la expansión sin persistir nada.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body submitAppointmentRequest true "Misma forma que POST /appointments"
// @Success 200 {object} previewResponse
// @Failure 400 {string} string "invalid json / formato de fecha"
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {object} previewResponse
// @Router /appointments/preview [post]
func previewAppointmentHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		req, view, ok := decodeSubmit(w, r, d)
		if !ok {
			return
		}

		res, intervals := d.Submitter.Preview(req, view)
		out := previewResponse{OK: res.OK, Reason: res.Reason, Intervals: make([]intervalResponse, 0, len(intervals))}
		for _, iv := range intervals {
			out.Intervals = append(out.Intervals, intervalResponse{Start: iv.Start, End: iv.End})
		}

		status := http.StatusOK
		if !res.OK {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, out)
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas
// @Description Fuente de verdad que la consola recarga completa después de cada envío.
// @Tags appointments
// @Produce json
// @Param subject_id query string false "Filtra por paciente"
// @Param status query string false "CSV de estados (pending,arrived,completed,cancelled)"
// @Param from query string false "Inicio mínimo (RFC3339)"
// @Param to query string false "Inicio máximo (RFC3339)"
// @Param limit query int false "1-200, por defecto 50"
// @Success 200 {array} appointmentResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /appointments [get]
func listAppointmentsHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := d.Store.List(r.Context(), filter)
		if err != nil {
			d.Log.Error("list appointments failed", map[string]any{"error": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getAppointmentHandler godoc
// @Summary Detalle de cita
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		a, err := d.Store.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado de una cita
// @Description pending -> arrived|completed|cancelled, arrived -> completed|cancelled.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / estado inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "appointment not found"
// @Failure 409 {string} string "invalid status transition"
// @Router /appointments/{appointmentID}/status [patch]
func updateStatusHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := d.Validate.Struct(req); err != nil {
			http.Error(w, "status must be one of pending, arrived, completed, cancelled", http.StatusBadRequest)
			return
		}

		a, err := d.Store.UpdateStatus(r.Context(), chi.URLParam(r, "appointmentID"), Status(req.Status))
		if err != nil {
			writeStoreError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func decodeSubmit(w http.ResponseWriter, r *http.Request, d Deps) (Request, View, bool) {
	var body submitAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return Request{}, "", false
	}
	if err := d.Validate.Struct(body); err != nil {
		http.Error(w, validationMessage(err), http.StatusBadRequest)
		return Request{}, "", false
	}

	start, err := dates.ParseLocal(body.Start, d.Location)
	if err != nil {
		http.Error(w, "start must be RFC3339 or YYYY-MM-DDTHH:MM[:SS]", http.StatusBadRequest)
		return Request{}, "", false
	}
	end, err := dates.ParseLocal(body.End, d.Location)
	if err != nil {
		http.Error(w, "end must be RFC3339 or YYYY-MM-DDTHH:MM[:SS]", http.StatusBadRequest)
		return Request{}, "", false
	}

	return Request{
		SubjectID:       strings.TrimSpace(body.SubjectID),
		Start:           start,
		End:             end,
		SplitAcrossDays: body.SplitAcrossDays,
		Notes:           body.Notes,
		Kind:            Kind(body.Kind),
	}, ParseView(body.CalendarView), true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	return fmt.Sprintf("%s failed %q validation", strings.ToLower(fe.Field()), fe.Tag())
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	filter := ListFilter{SubjectID: strings.TrimSpace(q.Get("subject_id"))}

	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ListFilter{}, errors.New("limit must be an integer")
		}
		filter.Limit = n
	}
	filter.Limit = filter.NormalizedLimit()

	// status=pending,arrived
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		for _, p := range strings.Split(v, ",") {
			st := Status(strings.ToLower(strings.TrimSpace(p)))
			if st == "" {
				continue
			}
			if !st.Valid() {
				return ListFilter{}, fmt.Errorf("unknown status %q", st)
			}
			filter.Statuses = append(filter.Statuses, st)
		}
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}

func writeStoreError(w http.ResponseWriter, d Deps, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, ErrBadTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		d.Log.Error("appointment store error", map[string]any{"error": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func submissionKey(req Request) string {
	return fmt.Sprintf("appointments:submit:%s:%d:%d:%t",
		req.SubjectID, req.Start.Unix(), req.End.Unix(), req.SplitAcrossDays)
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func toSubmitResponse(o Outcome) submitResponse {
	out := submitResponse{
		State:           o.State,
		Reason:          o.Reason,
		Attempted:       o.Attempted,
		Succeeded:       o.Succeeded,
		Error:           o.FailureMessage,
		RefreshRequired: o.RefreshRequired,
		Appointments:    make([]appointmentResponse, 0, len(o.Created)),
	}
	if o.FailedIndex >= 0 {
		idx := o.FailedIndex
		out.FailedIndex = &idx
	}
	for _, a := range o.Created {
		out.Appointments = append(out.Appointments, toAppointmentResponse(a))
	}
	return out
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		SubjectID: a.SubjectID,
		Start:     a.Start,
		End:       a.End,
		Notes:     a.Notes,
		Kind:      a.Kind,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
