package authz

import (
	"net/http"

	"github.com/millerserhii/shipment-tracking-api/internal/constants"
)

// RequiredAction maps an HTTP method to the model-level action needed
// to perform it. The empty string means the method needs no model
// permission at all.
func RequiredAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return constants.ActionView
	case http.MethodPost:
		return constants.ActionAdd
	case http.MethodPut, http.MethodPatch:
		return constants.ActionChange
	case http.MethodDelete:
		return constants.ActionDelete
	default:
		return ""
	}
}

// IsReadMethod reports whether the method is one of the safe read
// verbs that a read-only policy allows through.
func IsReadMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
