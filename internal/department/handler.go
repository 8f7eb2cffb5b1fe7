package department

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/treasury/internal/payment"
	"github.com/fkhayef/treasury/pkg/response"
)

// Handler handles HTTP requests for department operations
type Handler struct {
	service *Service
}

// NewHandler creates a new department handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for department endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/payments", h.SchedulePayment)

	return r
}

// Create handles POST /departments
// @Summary      Create a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        request body CreateDepartmentRequest true "Department creation request"
// @Success      201 {object} response.APIResponse{data=DepartmentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /departments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	d, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidName) || errors.Is(err, ErrInvalidBudget) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create department")
		return
	}

	response.JSON(w, http.StatusCreated, d.ToResponse())
}

// GetByID handles GET /departments/{id}
// @Summary      Get department by ID
// @Tags         departments
// @Produce      json
// @Param        id path int true "Department ID"
// @Success      200 {object} response.APIResponse{data=DepartmentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /departments/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid department ID")
		return
	}

	d, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrDepartmentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get department")
		return
	}

	response.JSON(w, http.StatusOK, d.ToResponse())
}

// List handles GET /departments
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]DepartmentResponse}
// @Router       /departments [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	departments, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list departments")
		return
	}

	departmentResponses := make([]*DepartmentResponse, len(departments))
	for i, d := range departments {
		departmentResponses[i] = d.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, departmentResponses, meta)
}

// SchedulePayment handles POST /departments/{id}/payments
// @Summary      Schedule a payment against a department budget
// @Description  Reserves the amount against the department's monthly ceiling at schedule time, then delegates to the payment registry.
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        id path int true "Department ID"
// @Param        request body payment.SchedulePaymentRequest true "Payment scheduling request"
// @Success      201 {object} response.APIResponse{data=payment.PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /departments/{id}/payments [post]
func (h *Handler) SchedulePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid department ID")
		return
	}

	var req payment.SchedulePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.SchedulePayment(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDepartmentNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrDepartmentNotActive):
			response.Conflict(w, "DEPARTMENT_NOT_ACTIVE", err.Error())
		case errors.Is(err, ErrExceedsDepartmentBudget),
			errors.Is(err, payment.ErrInvalidRecipient),
			errors.Is(err, payment.ErrInvalidAmount),
			errors.Is(err, payment.ErrUnsupportedToken):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to schedule department payment")
		}
		return
	}

	cfg, err := h.service.ApprovalConfig(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to load approval configuration")
		return
	}

	response.JSON(w, http.StatusCreated, p.ToResponse(cfg))
}
