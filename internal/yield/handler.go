package yield

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/treasury/internal/ledger"
	"github.com/fkhayef/treasury/pkg/response"
)

// Handler handles HTTP requests for yield position operations
type Handler struct {
	service *Service
}

// NewHandler creates a new yield handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for yield endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/deposit", h.Deposit)
	r.Post("/withdraw", h.Withdraw)
	r.Post("/harvest", h.Harvest)
	r.Get("/positions", h.ListPositions)

	return r
}

// Deposit handles POST /yield/deposit
// @Summary      Place vault funds with a yield strategy
// @Tags         yield
// @Accept       json
// @Produce      json
// @Param        request body DepositRequest true "Deposit request"
// @Success      200 {object} response.APIResponse{data=YieldPositionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /yield/deposit [post]
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	pos, err := h.service.Deposit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrUnsupportedToken) ||
			errors.Is(err, ErrUnsupportedStrategy) || errors.Is(err, ledger.ErrInsufficientFunds):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrStrategyCall):
			response.BadGateway(w, err.Error())
		default:
			response.InternalError(w, "Failed to deposit into strategy")
		}
		return
	}

	response.JSON(w, http.StatusOK, pos.ToResponse())
}

// Withdraw handles POST /yield/withdraw
// @Summary      Withdraw principal from a yield strategy
// @Tags         yield
// @Accept       json
// @Produce      json
// @Param        request body WithdrawRequest true "Withdrawal request"
// @Success      200 {object} response.APIResponse{data=YieldPositionResponse}
// @Failure      409 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /yield/withdraw [post]
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	pos, err := h.service.Withdraw(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrUnsupportedToken) ||
			errors.Is(err, ErrUnsupportedStrategy):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrPositionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrInsufficientPrincipal):
			response.Conflict(w, "INSUFFICIENT_PRINCIPAL", err.Error())
		case errors.Is(err, ErrStrategyCall):
			response.BadGateway(w, err.Error())
		default:
			response.InternalError(w, "Failed to withdraw from strategy")
		}
		return
	}

	response.JSON(w, http.StatusOK, pos.ToResponse())
}

// Harvest handles POST /yield/harvest
// @Summary      Collect accrued yield into the vault
// @Tags         yield
// @Accept       json
// @Produce      json
// @Param        request body HarvestRequest true "Harvest request"
// @Success      200 {object} response.APIResponse{data=HarvestResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /yield/harvest [post]
func (h *Handler) Harvest(w http.ResponseWriter, r *http.Request) {
	var req HarvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	pos, harvested, err := h.service.Harvest(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedToken) || errors.Is(err, ErrUnsupportedStrategy):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrPositionNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrStrategyCall):
			response.BadGateway(w, err.Error())
		default:
			response.InternalError(w, "Failed to harvest yield")
		}
		return
	}

	response.JSON(w, http.StatusOK, &HarvestResponse{
		Harvested: harvested,
		Position:  pos.ToResponse(),
	})
}

// ListPositions handles GET /yield/positions
// @Summary      List all yield positions
// @Tags         yield
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]YieldPositionResponse}
// @Router       /yield/positions [get]
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list yield positions")
		return
	}

	out := make([]*YieldPositionResponse, 0, len(positions))
	for _, pos := range positions {
		out = append(out, pos.ToResponse())
	}

	response.JSON(w, http.StatusOK, out)
}
