package supplier

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/treasury/pkg/response"
)

// Handler handles HTTP requests for supplier operations
type Handler struct {
	service *Service
}

// NewHandler creates a new supplier handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for supplier endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Register)
	r.Get("/", h.List)
	r.Get("/{address}", h.GetByAddress)

	return r
}

// Register handles POST /suppliers
// @Summary      Register a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        request body RegisterSupplierRequest true "Supplier registration request"
// @Success      201 {object} response.APIResponse{data=SupplierResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /suppliers [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	sup, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidAddress) || errors.Is(err, ErrUnsupportedToken) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrSupplierAlreadyExists) {
			response.Conflict(w, "SUPPLIER_EXISTS", err.Error())
			return
		}
		response.InternalError(w, "Failed to register supplier")
		return
	}

	response.JSON(w, http.StatusCreated, sup.ToResponse())
}

// GetByAddress handles GET /suppliers/{address}
// @Summary      Get supplier by address
// @Tags         suppliers
// @Produce      json
// @Param        address path string true "Supplier address"
// @Success      200 {object} response.APIResponse{data=SupplierResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /suppliers/{address} [get]
func (h *Handler) GetByAddress(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	sup, err := h.service.GetByAddress(r.Context(), address)
	if err != nil {
		if errors.Is(err, ErrSupplierNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get supplier")
		return
	}

	response.JSON(w, http.StatusOK, sup.ToResponse())
}

// List handles GET /suppliers
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]SupplierResponse}
// @Router       /suppliers [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	suppliers, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list suppliers")
		return
	}

	supplierResponses := make([]*SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		supplierResponses[i] = s.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, supplierResponses, meta)
}
