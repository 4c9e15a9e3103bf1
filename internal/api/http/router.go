// Package http exposes the rental engine over a JSON REST API. Every
// route carries a name; the auth middleware looks the name up in the
// endpoint security table to decide whether a token is required.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// NewRouter wires every endpoint under /v1. The rate limiter runs
// first, then authentication, then the handler.
func NewRouter(
	system *SystemHandler,
	accounts *AccountHandler,
	assets *AssetHandler,
	rentals *RentalHandler,
	shares *ShareHandler,
	history *HistoryHandler,
	auth *AuthMiddleware,
	limiter *rate.Limiter,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(rateLimit(limiter))
	r.Use(auth.Handler())

	v1 := r.PathPrefix("/v1").Subrouter()

	// Health and clock
	v1.HandleFunc("/health", system.Health).Methods(http.MethodGet).Name("Health")
	v1.HandleFunc("/tick", system.CurrentTick).Methods(http.MethodGet).Name("CurrentTick")

	// Accounts and banking
	v1.HandleFunc("/accounts", accounts.CreateAccount).Methods(http.MethodPost).Name("CreateAccount")
	v1.HandleFunc("/accounts/{id}/balance", accounts.GetBalance).Methods(http.MethodGet).Name("GetBalance")
	v1.HandleFunc("/accounts/{id}/transactions", accounts.ListTransactions).Methods(http.MethodGet).Name("ListTransactions")
	v1.HandleFunc("/accounts/{id}/deposit", accounts.Deposit).Methods(http.MethodPost).Name("Deposit")

	// Asset registry
	v1.HandleFunc("/assets", assets.MintAsset).Methods(http.MethodPost).Name("MintAsset")
	v1.HandleFunc("/assets", assets.ListAssets).Methods(http.MethodGet).Name("ListAssets")
	v1.HandleFunc("/assets/{id}", assets.GetAsset).Methods(http.MethodGet).Name("GetAsset")
	v1.HandleFunc("/assets/{id}", assets.BurnAsset).Methods(http.MethodDelete).Name("BurnAsset")
	v1.HandleFunc("/assets/{id}/terms", assets.SetRentable).Methods(http.MethodPut).Name("SetRentable")
	v1.HandleFunc("/assets/{id}/terms", assets.SetUnrentable).Methods(http.MethodDelete).Name("SetUnrentable")

	// Rentals
	v1.HandleFunc("/assets/{id}/rent", rentals.RentAsset).Methods(http.MethodPost).Name("RentAsset")
	v1.HandleFunc("/assets/{id}/extend", rentals.ExtendRent).Methods(http.MethodPost).Name("ExtendRent")
	v1.HandleFunc("/assets/{id}/recurring", rentals.SetRecurring).Methods(http.MethodPut).Name("SetRecurring")
	v1.HandleFunc("/assets/{id}/agreement", rentals.GetAgreement).Methods(http.MethodGet).Name("GetAgreement")
	v1.HandleFunc("/rentals", rentals.ListRentals).Methods(http.MethodGet).Name("ListRentals")

	// Usage shares
	v1.HandleFunc("/assets/{id}/shares", shares.ListShares).Methods(http.MethodGet).Name("ListShares")
	v1.HandleFunc("/assets/{id}/shares/{account}", shares.EquipShare).Methods(http.MethodPut).Name("EquipShare")
	v1.HandleFunc("/assets/{id}/shares/{account}", shares.UnequipShare).Methods(http.MethodDelete).Name("UnequipShare")

	// Event history
	v1.HandleFunc("/assets/{id}/events", history.AssetHistory).Methods(http.MethodGet).Name("AssetHistory")

	return r
}
