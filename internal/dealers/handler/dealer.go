package handler

import (
	"encoding/json"
	"net/http"

	"dealership/internal/dealers/service"
	httputil "dealership/pkg/http"
	"dealership/pkg/logger"
	"dealership/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// DealerHandler exposes dealer creation and reads. Dealers are never deleted,
// so no delete route exists.
type DealerHandler struct {
	service service.DealerService
	log     *logger.Logger
}

func NewDealerHandler(service service.DealerService, log *logger.Logger) *DealerHandler {
	return &DealerHandler{
		service: service,
		log:     log,
	}
}

func (h *DealerHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var dealer model.Dealer
	if err := json.NewDecoder(r.Body).Decode(&dealer); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	created, err := h.service.Create(r.Context(), &dealer)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *DealerHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ExtractID(ps)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	dealer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, dealer); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *DealerHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dealers, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, dealers); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *DealerHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/dealers", h.Create)
	router.GET("/api/v1/dealers", h.GetAll)
	router.GET("/api/v1/dealers/id/:id", h.GetByID)
}
