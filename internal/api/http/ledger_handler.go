package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/service"
)

type LedgerHandler struct {
	ledgerSvc service.LedgerService
}

func NewLedgerHandler(ledgerSvc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

type registerUserRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int32  `json:"points"`
}

type pointsRequest struct {
	Amount    int32  `json:"amount"`
	Reference string `json:"reference"`
}

type redeemRequest struct {
	Reward string `json:"reward"`
}

type balanceResponse struct {
	UserID  domain.UserID `json:"user_id"`
	Balance int32         `json:"balance"`
}

type transactionsResponse struct {
	Transactions []domain.PointsTransaction `json:"transactions"`
	TotalCount   int32                      `json:"total_count"`
}

type redeemResponse struct {
	Reward  domain.Reward `json:"reward"`
	Balance int32         `json:"balance"`
}

func userID(r *http.Request) domain.UserID {
	return domain.UserID(mux.Vars(r)["id"])
}

func (h *LedgerHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user := &domain.User{ID: domain.UserID(req.ID), Name: req.Name, Points: req.Points}
	if err := h.ledgerSvc.RegisterUser(r.Context(), user); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledgerSvc.GetBalance(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{UserID: userID(r), Balance: balance})
}

func (h *LedgerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledgerSvc.GetCustomerSummary(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetTransactions handles GET /users/{id}/transactions?page=1&page_size=20
func (h *LedgerHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt32(r, "page", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pageSize, err := queryInt32(r, "page_size", 20)
	if err != nil {
		writeError(w, r, err)
		return
	}
	txs, total, err := h.ledgerSvc.GetTransactions(r.Context(), userID(r), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if txs == nil {
		txs = []domain.PointsTransaction{}
	}
	writeJSON(w, http.StatusOK, transactionsResponse{Transactions: txs, TotalCount: total})
}

func (h *LedgerHandler) Credit(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.ledgerSvc.Credit)
}

func (h *LedgerHandler) Debit(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.ledgerSvc.Debit)
}

type pointsFunc func(ctx context.Context, userID domain.UserID, amount int32, reference string) (int32, error)

func (h *LedgerHandler) adjust(w http.ResponseWriter, r *http.Request, apply pointsFunc) {
	var req pointsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	balance, err := apply(r.Context(), userID(r), req.Amount, req.Reference)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{UserID: userID(r), Balance: balance})
}

func (h *LedgerHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	reward, balance, err := h.ledgerSvc.Redeem(r.Context(), userID(r), req.Reward)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, redeemResponse{Reward: reward, Balance: balance})
}

func (h *LedgerHandler) Spin(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerSvc.Spin(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LedgerHandler) ListRewards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledgerSvc.ListRewards())
}
