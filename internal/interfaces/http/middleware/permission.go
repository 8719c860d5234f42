package middleware

import (
	"context"
	"net/http"

	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleLookup resolves the role named in a token
type RoleLookup interface {
	GetRole(ctx context.Context, tenantID, name string) (staff.Role, error)
}

// PermissionMiddleware checks role permissions carried by the bearer token
type PermissionMiddleware struct {
	roles  RoleLookup
	logger *zap.Logger
}

// NewPermissionMiddleware creates a permission checker
func NewPermissionMiddleware(roles RoleLookup, logger *zap.Logger) *PermissionMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionMiddleware{roles: roles, logger: logger}
}

// actionFor maps an HTTP method to a role permission action
func actionFor(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "view"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "edit"
	case http.MethodDelete:
		return "delete"
	default:
		return method
	}
}

// Require returns middleware that lets the request through only when the
// caller's role grants the method's action on module. Requests without a
// role claim pass untouched, which keeps unauthenticated deployments open.
func (m *PermissionMiddleware) Require(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleName := c.GetString(JWTRoleKey)
		if roleName == "" {
			c.Next()
			return
		}

		tenantID := GetTenantID(c)
		role, err := m.roles.GetRole(c.Request.Context(), tenantID, roleName)
		if err != nil {
			m.logger.Warn("Role in token could not be resolved",
				zap.String("tenant_id", tenantID),
				zap.String("role", roleName),
				zap.Error(err),
			)
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Role not recognized")
			return
		}

		action := actionFor(c.Request.Method)
		if !role.Can(module, action) {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden,
				"Role "+roleName+" may not "+action+" "+module)
			return
		}

		c.Next()
	}
}
