package ledger

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/treasury/pkg/response"
)

// Handler handles HTTP requests for ledger operations
type Handler struct {
	service *Service
}

// NewHandler creates a new ledger handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for ledger endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/fund", h.Fund)
	r.Get("/{account}/{token}", h.GetBalance)

	return r
}

// Fund handles POST /ledger/fund
// @Summary      Deposit funds into the treasury vault
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        request body FundRequest true "Deposit request"
// @Success      200 {object} response.APIResponse{data=BalanceResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /ledger/fund [post]
func (h *Handler) Fund(w http.ResponseWriter, r *http.Request) {
	var req FundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.Fund(r.Context(), req.Token, req.Amount); err != nil {
		if errors.Is(err, ErrUnsupportedToken) || errors.Is(err, ErrInvalidAmount) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to fund vault")
		return
	}

	amount, err := h.service.Balance(r.Context(), Vault, req.Token)
	if err != nil {
		response.InternalError(w, "Failed to read vault balance")
		return
	}

	response.JSON(w, http.StatusOK, &BalanceResponse{
		Account: Vault,
		Token:   req.Token,
		Amount:  amount,
	})
}

// GetBalance handles GET /ledger/{account}/{token}
// @Summary      Get an account balance
// @Tags         ledger
// @Produce      json
// @Param        account path string true "Account address"
// @Param        token path string true "Token symbol"
// @Success      200 {object} response.APIResponse{data=BalanceResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /ledger/{account}/{token} [get]
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	token := chi.URLParam(r, "token")

	amount, err := h.service.Balance(r.Context(), account, token)
	if err != nil {
		if errors.Is(err, ErrUnsupportedToken) || errors.Is(err, ErrInvalidAccount) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to read balance")
		return
	}

	response.JSON(w, http.StatusOK, &BalanceResponse{
		Account: account,
		Token:   token,
		Amount:  amount,
	})
}
