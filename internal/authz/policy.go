package authz

import (
	"github.com/millerserhii/shipment-tracking-api/internal/constants"
	"github.com/millerserhii/shipment-tracking-api/internal/logger"
	"github.com/millerserhii/shipment-tracking-api/internal/models"
)

// Principal identifies the caller of a request. The zero value is the
// anonymous caller.
type Principal struct {
	ID          uint
	Email       string
	IsSuperuser bool
}

// Authenticated reports whether the principal is a known user.
func (p Principal) Authenticated() bool {
	return p.ID != 0
}

// PermissionChecker answers model-level permission questions. Service
// implements it; tests substitute a map-backed checker.
type PermissionChecker interface {
	HasPermission(userID uint, object, action string) bool
}

// Policy is the access decision surface a handler consults.
type Policy interface {
	AllowRequest(principal Principal, method string, payloadOwnerID uint) bool
	AllowObject(principal Principal, method string, entity any) bool
	CanViewAll(principal Principal) bool
}

// AllowAny passes every check. It gates catalogue models that carry
// no ownership and are served read-only by their routes.
type AllowAny struct{}

func (AllowAny) AllowRequest(Principal, string, uint) bool { return true }

func (AllowAny) AllowObject(Principal, string, any) bool { return true }

func (AllowAny) CanViewAll(Principal) bool { return true }

// OwnerPolicy gates access to one model. A superuser passes every
// check. A blanket model permission grants access to any object of the
// model. Without one, access falls back to ownership of the concrete
// object. When ReadOnly is set the ownership fallback covers only the
// safe read methods, so an owner without a blanket permission can read
// but not modify their own object.
type OwnerPolicy struct {
	Checker  PermissionChecker
	Object   string
	ReadOnly bool
}

// NewOwnerPolicy builds a policy for the given model object.
func NewOwnerPolicy(checker PermissionChecker, object string) OwnerPolicy {
	return OwnerPolicy{Checker: checker, Object: object}
}

// NewReadOnlyOwnerPolicy builds a policy whose ownership fallback is
// limited to GET, HEAD and OPTIONS.
func NewReadOnlyOwnerPolicy(checker PermissionChecker, object string) OwnerPolicy {
	return OwnerPolicy{Checker: checker, Object: object, ReadOnly: true}
}

// AllowRequest decides whether the request may proceed before any
// object is loaded. Creation is special: a payload declaring the
// caller as owner passes without a model permission, anything else
// needs the blanket grant. For other verbs ownership cannot be judged
// yet, so authenticated callers pass and the object-level check
// settles the rest. payloadOwnerID is zero when the payload declares
// no owner.
func (p OwnerPolicy) AllowRequest(principal Principal, method string, payloadOwnerID uint) bool {
	if principal.IsSuperuser {
		return true
	}
	action := RequiredAction(method)
	if action == "" {
		return true
	}
	if action == constants.ActionAdd {
		if principal.Authenticated() && payloadOwnerID == principal.ID {
			return true
		}
		return p.hasBlanket(principal, action)
	}
	return principal.Authenticated()
}

// AllowObject decides whether the request may act on one loaded
// object. Entities that cannot report an owner are treated as not
// owned by anyone, so only a blanket permission opens them.
func (p OwnerPolicy) AllowObject(principal Principal, method string, entity any) bool {
	if principal.IsSuperuser {
		return true
	}
	action := RequiredAction(method)
	if action == "" {
		return true
	}
	if p.hasBlanket(principal, action) {
		return true
	}
	if p.ReadOnly && !IsReadMethod(method) {
		return false
	}

	owned, ok := entity.(models.Owned)
	if !ok {
		logger.Warnw("ownership_check_unsupported",
			"object", p.Object,
			"entity", entityName(entity),
		)
		return false
	}
	ownerID, has := owned.OwnerID()
	if !has {
		return false
	}
	return principal.Authenticated() && ownerID == principal.ID
}

// CanViewAll reports whether list endpoints should skip owner
// scoping for the principal.
func (p OwnerPolicy) CanViewAll(principal Principal) bool {
	if principal.IsSuperuser {
		return true
	}
	return p.hasBlanket(principal, constants.ActionView)
}

func (p OwnerPolicy) hasBlanket(principal Principal, action string) bool {
	if p.Checker == nil || !principal.Authenticated() {
		return false
	}
	return p.Checker.HasPermission(principal.ID, p.Object, action)
}

func entityName(entity any) string {
	type named interface{ TableName() string }
	if n, ok := entity.(named); ok {
		return n.TableName()
	}
	return "unknown"
}
