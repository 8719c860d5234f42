package handler

import (
	staffapp "github.com/erp/backoffice/internal/application/staff"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleHandler handles role HTTP requests. Roles are addressed by name.
type RoleHandler struct {
	BaseHandler
	roles *staffapp.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roles *staffapp.RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{BaseHandler: BaseHandler{logger: logger}, roles: roles}
}

// List handles GET /roles
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.GetRoles(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(&h.BaseHandler, c, roles, func(r staff.Role, term string) bool {
		return containsFold(term, r.Name, r.Description)
	})
}

// Get handles GET /roles/:name
func (h *RoleHandler) Get(c *gin.Context) {
	role, err := h.roles.GetRole(c.Request.Context(), getTenantID(c), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Create handles POST /roles
func (h *RoleHandler) Create(c *gin.Context) {
	var req staff.Role
	if !h.bindJSON(c, &req) {
		return
	}
	role, err := h.roles.AddRole(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, role)
}

// Update handles PATCH /roles/:name
func (h *RoleHandler) Update(c *gin.Context) {
	var patch staff.RolePatch
	if !h.bindJSON(c, &patch) {
		return
	}
	role, err := h.roles.UpdateRole(c.Request.Context(), getTenantID(c), c.Param("name"), patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Delete handles DELETE /roles/:name
func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.roles.DeleteRole(c.Request.Context(), getTenantID(c), c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
