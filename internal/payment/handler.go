package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/treasury/pkg/middleware"
	"github.com/fkhayef/treasury/pkg/response"
)

// Handler handles HTTP requests for payment operations
type Handler struct {
	service *Service
}

// NewHandler creates a new payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for payment endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Schedule)
	r.Get("/", h.List)
	r.Post("/batch-execute", h.BatchExecute)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/can-execute", h.CanExecute)
	r.Delete("/{id}", h.Cancel)
	r.Post("/{id}/approve", h.Approve)
	r.Post("/{id}/revoke", h.Revoke)
	r.Post("/{id}/execute", h.Execute)

	return r
}

// ConfigRoutes returns the router for approver administration
func (h *Handler) ConfigRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetConfig)
	r.Post("/", h.AddApprover)
	r.Delete("/{address}", h.RemoveApprover)
	r.Put("/required", h.SetRequiredApprovals)
	r.Put("/timelock", h.SetApprovalTimelock)

	return r
}

// Schedule handles POST /payments
// @Summary      Schedule a payment
// @Description  Schedule a recurring or one-shot transfer from the vault. Amounts at or above the approval threshold require multi-party sign-off.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body SchedulePaymentRequest true "Payment scheduling request"
// @Success      201 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /payments [post]
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req SchedulePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Schedule(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidRecipient) || errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrUnsupportedToken) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to schedule payment")
		return
	}

	h.respondWithPayment(w, r, http.StatusCreated, p)
}

// GetByID handles GET /payments/{id}
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /payments/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get payment")
		return
	}

	h.respondWithPayment(w, r, http.StatusOK, p)
}

// List handles GET /payments
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Router       /payments [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	payments, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list payments")
		return
	}

	cfg, err := h.service.GetConfig(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to load approval configuration")
		return
	}

	paymentResponses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = p.ToResponse(cfg)
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, paymentResponses, meta)
}

// CanExecute handles GET /payments/{id}/can-execute
// @Summary      Check execution eligibility
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=CanExecuteResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /payments/{id}/can-execute [get]
func (h *Handler) CanExecute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	ok, err := h.service.CanExecute(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to evaluate payment")
		return
	}

	response.JSON(w, http.StatusOK, &CanExecuteResponse{PaymentID: id, CanExecute: ok})
}

// Cancel handles DELETE /payments/{id}
// @Summary      Cancel a payment
// @Description  Deactivates the payment immediately and terminally. Further approvals, revocations and executions are rejected.
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /payments/{id} [delete]
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrPaymentNotActive) {
			response.Conflict(w, "PAYMENT_NOT_ACTIVE", err.Error())
			return
		}
		response.InternalError(w, "Failed to cancel payment")
		return
	}

	h.respondWithPayment(w, r, http.StatusOK, p)
}

// Approve handles POST /payments/{id}/approve
// @Summary      Approve a payment
// @Tags         approvals
// @Produce      json
// @Param        id path int true "Payment ID"
// @Param        X-Caller-Address header string true "Approver address"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /payments/{id}/approve [post]
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		response.Forbidden(w, "Caller address required")
		return
	}

	p, err := h.service.Approve(r.Context(), id, caller)
	if err != nil {
		h.writeApprovalError(w, err)
		return
	}

	h.respondWithPayment(w, r, http.StatusOK, p)
}

// Revoke handles POST /payments/{id}/revoke
// @Summary      Revoke an approval vote
// @Tags         approvals
// @Produce      json
// @Param        id path int true "Payment ID"
// @Param        X-Caller-Address header string true "Approver address"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /payments/{id}/revoke [post]
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		response.Forbidden(w, "Caller address required")
		return
	}

	p, err := h.service.Revoke(r.Context(), id, caller)
	if err != nil {
		h.writeApprovalError(w, err)
		return
	}

	h.respondWithPayment(w, r, http.StatusOK, p)
}

// Execute handles POST /payments/{id}/execute
// @Summary      Execute a payment
// @Description  Moves funds from the vault to the recipient if the payment is active, due, approved and past its timelock.
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /payments/{id}/execute [post]
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, err := h.service.Execute(r.Context(), id)
	if err != nil {
		h.writeExecutionError(w, err)
		return
	}

	h.respondWithPayment(w, r, http.StatusOK, p)
}

// BatchExecute handles POST /payments/batch-execute
// @Summary      Execute a batch of payments
// @Description  Executes up to 50 payments in the given order, skipping ineligible entries without failing the batch.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body BatchExecuteRequest true "Batch execution request"
// @Success      200 {object} response.APIResponse{data=BatchResult}
// @Failure      400 {object} response.APIResponse
// @Router       /payments/batch-execute [post]
func (h *Handler) BatchExecute(w http.ResponseWriter, r *http.Request) {
	var req BatchExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.BatchExecute(r.Context(), req.PaymentIDs)
	if err != nil {
		if errors.Is(err, ErrBatchTooLarge) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to execute batch")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// GetConfig handles GET /approvers
// @Summary      Get approval configuration
// @Tags         approvals
// @Produce      json
// @Success      200 {object} response.APIResponse{data=Config}
// @Router       /approvers [get]
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetConfig(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to load approval configuration")
		return
	}
	response.JSON(w, http.StatusOK, cfg)
}

// AddApprover handles POST /approvers
// @Summary      Add an approver
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        request body AddApproverRequest true "Approver address"
// @Success      200 {object} response.APIResponse{data=Config}
// @Failure      409 {object} response.APIResponse
// @Router       /approvers [post]
func (h *Handler) AddApprover(w http.ResponseWriter, r *http.Request) {
	var req AddApproverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	cfg, err := h.service.AddApprover(r.Context(), req.Address)
	if err != nil {
		if errors.Is(err, ErrAlreadyApprover) {
			response.Conflict(w, "ALREADY_APPROVER", err.Error())
			return
		}
		if errors.Is(err, ErrInvalidRecipient) {
			response.BadRequest(w, "Approver address must not be empty")
			return
		}
		response.InternalError(w, "Failed to add approver")
		return
	}

	response.JSON(w, http.StatusOK, cfg)
}

// RemoveApprover handles DELETE /approvers/{address}
// @Summary      Remove an approver
// @Tags         approvals
// @Produce      json
// @Param        address path string true "Approver address"
// @Success      200 {object} response.APIResponse{data=Config}
// @Failure      409 {object} response.APIResponse
// @Router       /approvers/{address} [delete]
func (h *Handler) RemoveApprover(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	cfg, err := h.service.RemoveApprover(r.Context(), address)
	if err != nil {
		if errors.Is(err, ErrNotAnApprover) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrBreaksQuorum) {
			response.Conflict(w, "BREAKS_QUORUM", err.Error())
			return
		}
		response.InternalError(w, "Failed to remove approver")
		return
	}

	response.JSON(w, http.StatusOK, cfg)
}

// SetRequiredApprovals handles PUT /approvers/required
// @Summary      Set the approval quorum
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        request body SetRequiredApprovalsRequest true "New quorum"
// @Success      200 {object} response.APIResponse{data=Config}
// @Failure      400 {object} response.APIResponse
// @Router       /approvers/required [put]
func (h *Handler) SetRequiredApprovals(w http.ResponseWriter, r *http.Request) {
	var req SetRequiredApprovalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	cfg, err := h.service.SetRequiredApprovals(r.Context(), req.RequiredApprovals)
	if err != nil {
		if errors.Is(err, ErrExceedsApproverCount) || errors.Is(err, ErrInvalidRequirement) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to set required approvals")
		return
	}

	response.JSON(w, http.StatusOK, cfg)
}

// SetApprovalTimelock handles PUT /approvers/timelock
// @Summary      Set the approval timelock
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        request body SetTimelockRequest true "New timelock in seconds"
// @Success      200 {object} response.APIResponse{data=Config}
// @Failure      400 {object} response.APIResponse
// @Router       /approvers/timelock [put]
func (h *Handler) SetApprovalTimelock(w http.ResponseWriter, r *http.Request) {
	var req SetTimelockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	cfg, err := h.service.SetApprovalTimelock(r.Context(), req.TimelockSeconds)
	if err != nil {
		if errors.Is(err, ErrTimelockTooLong) || errors.Is(err, ErrInvalidAmount) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to set timelock")
		return
	}

	response.JSON(w, http.StatusOK, cfg)
}

func (h *Handler) respondWithPayment(w http.ResponseWriter, r *http.Request, status int, p *Payment) {
	cfg, err := h.service.GetConfig(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to load approval configuration")
		return
	}
	response.JSON(w, status, p.ToResponse(cfg))
}

func (h *Handler) writeApprovalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotAnApprover):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrPaymentNotActive):
		response.Conflict(w, "PAYMENT_NOT_ACTIVE", err.Error())
	case errors.Is(err, ErrAlreadyApproved):
		response.Conflict(w, "ALREADY_APPROVED", err.Error())
	case errors.Is(err, ErrHasNotApproved):
		response.Conflict(w, "HAS_NOT_APPROVED", err.Error())
	default:
		response.InternalError(w, "Approval operation failed")
	}
}

func (h *Handler) writeExecutionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrPaymentNotActive):
		response.Conflict(w, "PAYMENT_NOT_ACTIVE", err.Error())
	case errors.Is(err, ErrNotReady):
		response.Conflict(w, "NOT_READY", err.Error())
	case errors.Is(err, ErrNeedsApproval):
		response.Conflict(w, "NEEDS_APPROVAL", err.Error())
	default:
		response.BadRequest(w, err.Error())
	}
}
