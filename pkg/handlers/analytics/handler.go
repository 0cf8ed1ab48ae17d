package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/adapters"
	"github.com/de-tools/fabric-atlas/pkg/models/api"
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/services/analytics"
	"github.com/de-tools/fabric-atlas/pkg/services/ordersync"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

type Handler struct {
	analytics analytics.Service
	sync      ordersync.Controller
	now       func() time.Time
}

func NewHandler(analytics analytics.Service, sync ordersync.Controller) *Handler {
	return &Handler{
		analytics: analytics,
		sync:      sync,
		now:       time.Now,
	}
}

func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.analytics.ListSources(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := make([]api.Source, 0, len(profiles))
	for _, p := range profiles {
		response = append(response, adapters.MapSourceProfileDomainToApi(p))
	}
	writeJSON(w, r, http.StatusOK, response)
}

// GetAnalytics serves the dashboard views of a source. The optional date
// query parameter (YYYY-MM-DD) picks the last day of the daily series.
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	source := chi.URLParam(r, "source")

	now := h.now()
	if date := r.URL.Query().Get("date"); date != "" {
		day, err := time.ParseInLocation(dateLayout, date, now.Location())
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, api.Error{Error: "date must be formatted as YYYY-MM-DD"})
			return
		}
		now = day
	}

	result, err := h.analytics.GetAnalytics(ctx, source, now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapAnalyticsDomainToApi(source, now, result))
}

func (h *Handler) ListSyncs(w http.ResponseWriter, r *http.Request) {
	states, err := h.sync.Status(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := make([]api.SyncState, 0, len(states))
	for _, s := range states {
		response = append(response, adapters.MapSyncStateDomainToApi(s))
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) StartSync(w http.ResponseWriter, r *http.Request) {
	if err := h.sync.Start(r.Context(), chi.URLParam(r, "source")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) CancelSync(w http.ResponseWriter, r *http.Request) {
	if err := h.sync.Cancel(r.Context(), chi.URLParam(r, "source")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSourceNotFound), errors.Is(err, domain.ErrSyncNotRunning):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSyncAlreadyRunning):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnsupportedSourceType):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeJSON(w, r, status, api.Error{Error: http.StatusText(status)})
		return
	}
	writeJSON(w, r, status, api.Error{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}
