package http

import (
	"errors"
	"io"
	"net/http"

	"collectrent/internal/domain"
	"collectrent/internal/ledger"
	"collectrent/internal/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// AccountHandler serves account onboarding and the banking endpoints.
type AccountHandler struct {
	bank   ledger.Gateway
	tokens security.TokenManager
	clock  Clock
}

func NewAccountHandler(bank ledger.Gateway, tokens security.TokenManager, clock Clock) *AccountHandler {
	return &AccountHandler{bank: bank, tokens: tokens, clock: clock}
}

// CreateAccount opens an account and returns it together with an access
// token for the new holder. Email is optional; without one the holder
// simply gets no rental notifications.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	account, err := h.bank.CreateAccount(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.tokens.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Account *domain.Account `json:"account"`
		Token   string          `json:"token"`
	}{Account: account, Token: token})
}

// GetBalance returns the account state. Balances are visible to their
// holder only.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid account id"})
		return
	}
	if callerID(r.Context()) != id {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "balance is visible to the account holder only"})
		return
	}

	account, err := h.bank.Account(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// ListTransactions returns the account's transaction history, oldest
// first. Like the balance it is holder-only.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid account id"})
		return
	}
	if callerID(r.Context()) != id {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "transactions are visible to the account holder only"})
		return
	}

	transactions, err := h.bank.ListTransactions(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	writeJSON(w, http.StatusOK, struct {
		Transactions []domain.Transaction `json:"transactions"`
	}{Transactions: transactions})
}

// Deposit credits an account from outside the system. Any authenticated
// caller may top up any account; the recorded transaction carries the
// current tick.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid account id"})
		return
	}

	var req struct {
		Amount domain.Balance `json:"amount"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	if err := h.bank.Deposit(r.Context(), id, req.Amount, h.clock.CurrentTick()); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.bank.Account(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}
