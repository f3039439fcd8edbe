package shared

import (
	"github.com/millerserhii/shipment-tracking-api/internal/authz"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key the auth middleware stores the
// caller's principal under.
const PrincipalKey = "principal"

// GetPrincipal reads the caller's principal from the request context.
// An unauthenticated request yields the zero principal.
func GetPrincipal(c *gin.Context) authz.Principal {
	if c == nil {
		return authz.Principal{}
	}
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return authz.Principal{}
	}
	principal, ok := value.(authz.Principal)
	if !ok {
		return authz.Principal{}
	}
	return principal
}

// SetPrincipal stores the caller's principal on the request context.
func SetPrincipal(c *gin.Context, principal authz.Principal) {
	c.Set(PrincipalKey, principal)
}
