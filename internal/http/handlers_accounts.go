package http

import (
	"net/http"

	"fintrack/internal/core"
)

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.ListBankAccounts(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var a core.BankAccount
	if err := decodeJSON(r, &a); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.ID = ""

	created, err := s.accounts.CreateBankAccount(r.Context(), userID(r), a)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateUser(userID(r))
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var a core.BankAccount
	if err := decodeJSON(r, &a); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.ID = r.PathValue("id")

	updated, err := s.accounts.UpdateBankAccount(r.Context(), userID(r), a)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateUser(userID(r))
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.DeleteBankAccount(r.Context(), userID(r), r.PathValue("id")); err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateUser(userID(r))
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleGetCash(w http.ResponseWriter, r *http.Request) {
	cash, err := s.accounts.GetCash(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cash)
}

type setCashRequest struct {
	Balance core.Money `json:"balance"`
}

func (s *Server) handleSetCash(w http.ResponseWriter, r *http.Request) {
	var req setCashRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.accounts.SetCash(r.Context(), userID(r), req.Balance); err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateUser(userID(r))
	respondJSON(w, http.StatusOK, core.CashAccount{Balance: req.Balance})
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.accounts.ListDebts(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, debts)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var d core.Debt
	if err := decodeJSON(r, &d); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d.ID = ""

	created, err := s.accounts.CreateDebt(r.Context(), userID(r), d)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateUser(userID(r))
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.DeleteDebt(r.Context(), userID(r), r.PathValue("id")); err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateUser(userID(r))
	respondJSON(w, http.StatusNoContent, nil)
}

type adjustDebtRequest struct {
	Delta core.Money `json:"delta"`
}

func (s *Server) handleAdjustDebt(w http.ResponseWriter, r *http.Request) {
	var req adjustDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.accounts.AdjustDebt(r.Context(), userID(r), r.PathValue("id"), req.Delta)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateUser(userID(r))
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.accounts.GetProfile(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p core.Profile
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.accounts.UpdateProfile(r.Context(), userID(r), p); err != nil {
		respondServiceError(w, r, err)
		return
	}
	s.invalidateUser(userID(r))

	updated, err := s.accounts.GetProfile(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
