package conditional

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/treasury/internal/ledger"
	"github.com/fkhayef/treasury/pkg/response"
)

// Handler handles HTTP requests for conditional payment operations
type Handler struct {
	service *Service
}

// NewHandler creates a new conditional payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for conditional payment endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Schedule)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/execute", h.Execute)

	return r
}

// Schedule handles POST /conditional
// @Summary      Schedule a condition-gated payment
// @Tags         conditional
// @Accept       json
// @Produce      json
// @Param        request body ScheduleConditionalRequest true "Conditional scheduling request"
// @Success      201 {object} response.APIResponse{data=ConditionalPaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /conditional [post]
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleConditionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	cp, err := h.service.Schedule(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidRecipient) || errors.Is(err, ErrInvalidAmount) ||
			errors.Is(err, ErrUnsupportedToken) || errors.Is(err, ErrInvalidCommitment) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to schedule conditional payment")
		return
	}

	response.JSON(w, http.StatusCreated, cp.ToResponse())
}

// GetByID handles GET /conditional/{id}
// @Summary      Get a conditional payment
// @Tags         conditional
// @Produce      json
// @Param        id path int true "Conditional payment ID"
// @Success      200 {object} response.APIResponse{data=ConditionalPaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /conditional/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid conditional payment ID")
		return
	}

	cp, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get conditional payment")
		return
	}

	response.JSON(w, http.StatusOK, cp.ToResponse())
}

// Execute handles POST /conditional/{id}/execute
// @Summary      Execute a conditional payment with a proof
// @Tags         conditional
// @Accept       json
// @Produce      json
// @Param        id path int true "Conditional payment ID"
// @Param        request body ExecuteConditionalRequest true "Proof"
// @Success      200 {object} response.APIResponse{data=ConditionalPaymentResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /conditional/{id}/execute [post]
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid conditional payment ID")
		return
	}

	var req ExecuteConditionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	cp, err := h.service.Execute(r.Context(), id, req.Proof)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrAlreadyExecuted):
			response.Conflict(w, "ALREADY_EXECUTED", err.Error())
		case errors.Is(err, ErrProofRejected):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ledger.ErrInsufficientFunds):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to execute conditional payment")
		}
		return
	}

	response.JSON(w, http.StatusOK, cp.ToResponse())
}
