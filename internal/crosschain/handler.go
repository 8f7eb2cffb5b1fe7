package crosschain

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/treasury/internal/payment"
	"github.com/fkhayef/treasury/pkg/response"
)

// Handler handles HTTP requests for cross-chain payment operations
type Handler struct {
	service *Service
}

// NewHandler creates a new cross-chain handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for cross-chain endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Schedule)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/execute", h.Execute)

	return r
}

// Schedule handles POST /crosschain
// @Summary      Schedule a cross-chain payment
// @Tags         crosschain
// @Accept       json
// @Produce      json
// @Param        request body ScheduleCrossChainRequest true "Cross-chain scheduling request"
// @Success      201 {object} response.APIResponse{data=CrossChainPaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /crosschain [post]
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleCrossChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, cc, err := h.service.Schedule(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidDomain) ||
			errors.Is(err, payment.ErrInvalidRecipient) ||
			errors.Is(err, payment.ErrInvalidAmount) ||
			errors.Is(err, payment.ErrUnsupportedToken) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to schedule cross-chain payment")
		return
	}

	h.respond(w, r, http.StatusCreated, p, cc)
}

// GetByID handles GET /crosschain/{id}
// @Summary      Get a cross-chain payment
// @Tags         crosschain
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=CrossChainPaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /crosschain/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, cc, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotCrossChain) || errors.Is(err, payment.ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get cross-chain payment")
		return
	}

	h.respond(w, r, http.StatusOK, p, cc)
}

// Execute handles POST /crosschain/{id}/execute
// @Summary      Initiate a cross-chain payment
// @Description  Debits the vault and dispatches the burn-and-mint leg through the settlement network. A failed dispatch rolls the debit back.
// @Tags         crosschain
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=CrossChainPaymentResponse}
// @Failure      409 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /crosschain/{id}/execute [post]
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, cc, err := h.service.Execute(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotCrossChain), errors.Is(err, payment.ErrPaymentNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrSettlementDispatch):
			response.BadGateway(w, err.Error())
		case errors.Is(err, payment.ErrPaymentNotActive):
			response.Conflict(w, "PAYMENT_NOT_ACTIVE", err.Error())
		case errors.Is(err, payment.ErrNotReady):
			response.Conflict(w, "NOT_READY", err.Error())
		case errors.Is(err, payment.ErrNeedsApproval):
			response.Conflict(w, "NEEDS_APPROVAL", err.Error())
		default:
			response.BadRequest(w, err.Error())
		}
		return
	}

	h.respond(w, r, http.StatusOK, p, cc)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, p *payment.Payment, cc *CrossChainPayment) {
	cfg, err := h.service.ApprovalConfig(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to load approval configuration")
		return
	}
	response.JSON(w, status, ToResponse(p.ToResponse(cfg), cc))
}
