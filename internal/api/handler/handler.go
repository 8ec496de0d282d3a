// Package handler exposes the authenticator and the complaint lifecycle over HTTP.
package handler

import (
	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/complaint"
)

// Handler містить посилання на сервіси автентифікації та скарг
type Handler struct {
	Auth       *auth.Service
	Complaints *complaint.Service
}

func NewHandler(authService *auth.Service, complaints *complaint.Service) *Handler {
	return &Handler{
		Auth:       authService,
		Complaints: complaints,
	}
}
