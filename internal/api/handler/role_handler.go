package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/auth-service/internal/api/metrics"
	"github.com/pressroom/auth-service/internal/core/ports"
)

type RoleHandler struct {
	roleService    ports.RoleService
	enforceSession bool
}

// NewRoleHandler wires role assignment. When enforceSession is set the route
// must sit behind middleware.Session.
func NewRoleHandler(roleService ports.RoleService, enforceSession bool) *RoleHandler {
	return &RoleHandler{roleService: roleService, enforceSession: enforceSession}
}

type assignRoleRequest struct {
	Role string `json:"role"`
}

// Assign grants a role to a user on behalf of an admin.
//
// @Summary      Assign a role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        adminId  path      string             true  "Acting admin id"
// @Param        userId   path      string             true  "Target user id"
// @Param        body     body      assignRoleRequest  true  "Role to grant (Admin, Editor or Support)"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  errorBody
// @Failure      401      {object}  errorBody
// @Failure      403      {object}  errorBody
// @Failure      404      {object}  errorBody
// @Router       /auth/assign/{adminId}/{userId} [patch]
func (h *RoleHandler) Assign(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	adminID, err := actingAdmin(c, c.Param("adminId"), h.enforceSession)
	if err != nil {
		metrics.RoleAssignmentsTotal.WithLabelValues(metrics.Result(err)).Inc()
		return err
	}

	user, err := h.roleService.AssignRole(c.Request().Context(), adminID, c.Param("userId"), req.Role)
	metrics.RoleAssignmentsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}
