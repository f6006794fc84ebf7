package handlers

import (
	"net/http"

	"github.com/sfsking/pizza-party-hq/internal/common/auth"
	"github.com/sfsking/pizza-party-hq/internal/common/httpx"
	"github.com/sfsking/pizza-party-hq/internal/common/logger"
	"github.com/sfsking/pizza-party-hq/internal/domain"
	"github.com/sfsking/pizza-party-hq/internal/microservices/staff/service"
)

type EmployeeHandler struct {
	service service.StaffServiceInterface
	lg      *logger.Logger
}

func NewEmployeeHandler(s service.StaffServiceInterface, lg *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{service: s, lg: lg}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListEmployees(r.Context(), auth.ActorOf(r))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "list_employees_failed", err)
		return
	}
	if list == nil {
		list = []domain.Employee{}
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.GetEmployee(r.Context(), auth.ActorOf(r), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, h.lg, "get_employee_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorOf(r)
	e, err := h.service.GetEmployee(r.Context(), actor, actor.ID)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "get_me_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req domain.SetActiveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	e, err := h.service.SetActive(r.Context(), auth.ActorOf(r), r.PathValue("id"), req.Active)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "set_employee_active_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req domain.SetRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	e, err := h.service.SetRole(r.Context(), auth.ActorOf(r), r.PathValue("id"), req.Role)
	if err != nil {
		httpx.WriteError(w, r, h.lg, "set_employee_role_failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}
