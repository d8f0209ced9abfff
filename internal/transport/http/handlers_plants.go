package httptransport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sunflower/internal/plants/models"
	"sunflower/pkg/platform/httputil"
)

// ViewModel is the UI state the handlers expose.
type ViewModel interface {
	Plants() (models.PlantList, bool)
	SubscribePlants(ctx context.Context) <-chan models.PlantList
	Status() models.Status
	SetFilter(zone models.GrowZone)
	ClearFilter()
	MessageShown()
}

// Handler is the thin HTTP layer over the view model.
type Handler struct {
	vm     ViewModel
	logger *slog.Logger
}

// NewHandler creates a plants Handler.
func NewHandler(vm ViewModel, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{vm: vm, logger: logger}
}

// Register registers the plant routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/plants", h.handleGetPlants)
	r.Get("/plants/stream", h.handleStreamPlants)
	r.Get("/status", h.handleGetStatus)
	r.Post("/status/message/ack", h.handleAckMessage)
	r.Put("/filter/{zone}", h.handleSetFilter)
	r.Delete("/filter", h.handleClearFilter)
}

func (h *Handler) handleGetPlants(w http.ResponseWriter, r *http.Request) {
	list, ok := h.vm.Plants()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

// handleStreamPlants sends every projection as a server-sent event until the
// client goes away. Slow clients only see the newest list.
func (h *Handler) handleStreamPlants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.WarnContext(ctx, "plant stream unsupported", "error", err)
		return
	}

	for list := range h.vm.SubscribePlants(ctx) {
		payload, err := json.Marshal(list)
		if err != nil {
			h.logger.ErrorContext(ctx, "encode plant list", "error", err)
			return
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func (h *Handler) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.vm.Status())
}

func (h *Handler) handleAckMessage(w http.ResponseWriter, r *http.Request) {
	h.vm.MessageShown()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	zone, err := models.ParseGrowZone(chi.URLParam(r, "zone"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "invalid grow zone", "error", err)
		httputil.WriteError(w, err)
		return
	}
	h.vm.SetFilter(zone)
	httputil.WriteJSON(w, http.StatusAccepted, h.vm.Status())
}

func (h *Handler) handleClearFilter(w http.ResponseWriter, r *http.Request) {
	h.vm.ClearFilter()
	httputil.WriteJSON(w, http.StatusAccepted, h.vm.Status())
}
