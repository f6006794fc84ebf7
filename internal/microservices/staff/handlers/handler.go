package handlers

import (
	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/microservices/staff/service"
)

type Handler struct {
	EmployeeHandler *EmployeeHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		EmployeeHandler: NewEmployeeHandler(s.StaffService, lg),
	}
}

func (h *Handler) Register(rt *httpx.Router) {
	rt.HandleFunc("GET /api/v1/me", h.EmployeeHandler.Me)
	rt.HandleFunc("GET /api/v1/employees", auth.RequireAdmin(h.EmployeeHandler.List))
	rt.HandleFunc("GET /api/v1/employees/{id}", h.EmployeeHandler.Get)
	rt.HandleFunc("PATCH /api/v1/employees/{id}/active", auth.RequireAdmin(h.EmployeeHandler.SetActive))
	rt.HandleFunc("PATCH /api/v1/employees/{id}/role", auth.RequireAdmin(h.EmployeeHandler.SetRole))
}
