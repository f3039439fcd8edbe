package authz

import (
	"net/http"
	"testing"

	"github.com/millerserhii/shipment-tracking-api/internal/models"
)

type stubChecker struct {
	grants map[string]bool
}

func (s *stubChecker) HasPermission(userID uint, object, action string) bool {
	if s == nil {
		return false
	}
	key := SubjectForUser(userID) + "|" + object + "|" + action
	return s.grants[key]
}

func grantKey(userID uint, object, action string) string {
	return SubjectForUser(userID) + "|" + object + "|" + action
}

type ownedEntity struct {
	models.Record
	UserID uint
}

func (e *ownedEntity) TableName() string { return "owned_entities" }

func (e *ownedEntity) OwnerID() (uint, bool) { return e.UserID, true }

type plainEntity struct {
	models.Record
}

func (e *plainEntity) TableName() string { return "plain_entities" }

func TestRequiredAction(t *testing.T) {
	cases := []struct {
		method string
		want   string
	}{
		{method: http.MethodGet, want: "view"},
		{method: http.MethodHead, want: "view"},
		{method: http.MethodOptions, want: "view"},
		{method: http.MethodPost, want: "add"},
		{method: http.MethodPut, want: "change"},
		{method: http.MethodPatch, want: "change"},
		{method: http.MethodDelete, want: "delete"},
		{method: "TRACE", want: ""},
		{method: "CONNECT", want: ""},
	}
	for _, item := range cases {
		got := RequiredAction(item.method)
		if got != item.want {
			t.Fatalf("required action failed, method=%s want=%q got=%q", item.method, item.want, got)
		}
	}
}

func TestAllowObjectOwnerWithoutBlanketPermission(t *testing.T) {
	policy := NewOwnerPolicy(&stubChecker{}, "note")
	owner := Principal{ID: 10}
	entity := &ownedEntity{UserID: 10}

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		if !policy.AllowRequest(owner, method, 0) {
			t.Fatalf("expected owner request allowed, method=%s", method)
		}
		if !policy.AllowObject(owner, method, entity) {
			t.Fatalf("expected owner object access allowed, method=%s", method)
		}
	}
}

func TestReadOnlyOwnerWriteDenied(t *testing.T) {
	policy := NewReadOnlyOwnerPolicy(&stubChecker{}, "usershipment")
	owner := Principal{ID: 10}
	entity := &ownedEntity{UserID: 10}

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		if !policy.AllowObject(owner, method, entity) {
			t.Fatalf("expected owner read allowed, method=%s", method)
		}
	}
	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		if policy.AllowObject(owner, method, entity) {
			t.Fatalf("expected owner write denied without permission, method=%s", method)
		}
	}
}

func TestAllowObjectDeniesNonOwner(t *testing.T) {
	policy := NewOwnerPolicy(&stubChecker{}, "usershipment")
	stranger := Principal{ID: 11}
	entity := &ownedEntity{UserID: 10}

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		if policy.AllowObject(stranger, method, entity) {
			t.Fatalf("expected non-owner denied, method=%s", method)
		}
	}
}

func TestAllowObjectBlanketPermissionOverridesOwnership(t *testing.T) {
	checker := &stubChecker{grants: map[string]bool{
		grantKey(11, "usershipment", "view"): true,
	}}
	policy := NewOwnerPolicy(checker, "usershipment")
	viewer := Principal{ID: 11}
	entity := &ownedEntity{UserID: 10}

	if !policy.AllowObject(viewer, http.MethodGet, entity) {
		t.Fatalf("expected blanket view permission to allow")
	}
	if policy.AllowObject(viewer, http.MethodPut, entity) {
		t.Fatalf("expected write without change permission denied")
	}
}

func TestAllowObjectSuperuserBypass(t *testing.T) {
	policy := NewOwnerPolicy(&stubChecker{}, "usershipment")
	root := Principal{ID: 1, IsSuperuser: true}
	entity := &ownedEntity{UserID: 99}

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		if !policy.AllowObject(root, method, entity) {
			t.Fatalf("expected superuser allowed, method=%s", method)
		}
	}
}

func TestAllowObjectUnownedEntity(t *testing.T) {
	policy := NewOwnerPolicy(&stubChecker{}, "plain")
	user := Principal{ID: 4}

	if policy.AllowObject(user, http.MethodPut, &plainEntity{}) {
		t.Fatalf("expected entity without owner to deny without permission")
	}
}

func TestReadOnlyPolicyLimitsFallback(t *testing.T) {
	policy := NewReadOnlyOwnerPolicy(&stubChecker{}, "usershipment")
	user := Principal{ID: 5}
	entity := &ownedEntity{UserID: 5}

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		if !policy.AllowRequest(user, method, 0) {
			t.Fatalf("expected authenticated read request allowed, method=%s", method)
		}
		if policy.AllowRequest(Principal{}, method, 0) {
			t.Fatalf("expected anonymous request denied, method=%s", method)
		}
		if policy.AllowObject(Principal{ID: 6}, method, entity) {
			t.Fatalf("expected non-owner read denied without view permission, method=%s", method)
		}
	}
	if policy.AllowRequest(user, http.MethodPost, 0) {
		t.Fatalf("expected create without declared owner denied")
	}
	if policy.AllowObject(user, http.MethodPut, entity) {
		t.Fatalf("expected write object access denied on read-only policy")
	}
}

func TestAllowRequestCreateForSelf(t *testing.T) {
	policy := NewOwnerPolicy(&stubChecker{}, "usershipment")
	user := Principal{ID: 10}

	if !policy.AllowRequest(user, http.MethodPost, 10) {
		t.Fatalf("expected create with own owner id allowed without permission")
	}
}

func TestAllowRequestCreateForOther(t *testing.T) {
	checker := &stubChecker{grants: map[string]bool{
		grantKey(11, "usershipment", "add"): true,
	}}
	policy := NewOwnerPolicy(checker, "usershipment")

	if policy.AllowRequest(Principal{ID: 10}, http.MethodPost, 20) {
		t.Fatalf("expected create for another user denied without add permission")
	}
	if !policy.AllowRequest(Principal{ID: 11}, http.MethodPost, 20) {
		t.Fatalf("expected add permission holder to create for another user")
	}
	if policy.AllowRequest(Principal{}, http.MethodPost, 20) {
		t.Fatalf("expected anonymous create denied")
	}
}

func TestCanViewAll(t *testing.T) {
	checker := &stubChecker{grants: map[string]bool{
		grantKey(6, "usershipment", "view"): true,
	}}
	policy := NewOwnerPolicy(checker, "usershipment")

	if !policy.CanViewAll(Principal{ID: 6}) {
		t.Fatalf("expected blanket view holder to view all")
	}
	if policy.CanViewAll(Principal{ID: 7}) {
		t.Fatalf("expected plain user scoped to own rows")
	}
	if !policy.CanViewAll(Principal{ID: 8, IsSuperuser: true}) {
		t.Fatalf("expected superuser to view all")
	}
	if policy.CanViewAll(Principal{}) {
		t.Fatalf("expected anonymous caller scoped")
	}
}
