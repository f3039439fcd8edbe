package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	casbinTableName = "casbin_rule"
	userSubjectFmt  = "user:%d"
)

const defaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// Grant is one persisted permission rule.
type Grant struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service wraps policy storage and permission checks. Policies live in
// the database next to the domain tables, so a grant survives restarts.
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService creates the authorization service backed by db.
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// HasPermission reports whether the user holds the model-level
// permission (object, action). An unknown action never matches.
func (s *Service) HasPermission(userID uint, object, action string) bool {
	if s == nil || s.enforcer == nil || userID == 0 {
		return false
	}
	normalizedAction := NormalizeAction(action)
	if normalizedAction == "" {
		return false
	}
	allowed, err := s.enforcer.Enforce(SubjectForUser(userID), NormalizeObject(object), normalizedAction)
	if err != nil {
		return false
	}
	return allowed
}

// GrantPermission persists a model-level permission for the user.
func (s *Service) GrantPermission(userID uint, object, action string) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	if userID == 0 {
		return fmt.Errorf("user id is required")
	}
	normalizedObject := NormalizeObject(object)
	normalizedAction := NormalizeAction(action)
	if normalizedObject == "" || normalizedAction == "" {
		return fmt.Errorf("object and action are required")
	}

	if _, err := s.enforcer.AddPolicy(SubjectForUser(userID), normalizedObject, normalizedAction); err != nil {
		return fmt.Errorf("grant permission failed: %w", err)
	}
	return nil
}

// RevokePermission removes a previously granted permission. Revoking a
// rule that does not exist is not an error.
func (s *Service) RevokePermission(userID uint, object, action string) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	if userID == 0 {
		return fmt.Errorf("user id is required")
	}

	if _, err := s.enforcer.RemovePolicy(SubjectForUser(userID), NormalizeObject(object), NormalizeAction(action)); err != nil {
		return fmt.Errorf("revoke permission failed: %w", err)
	}
	return nil
}

// ListForUser returns every permission rule held by the user, sorted
// for stable output.
func (s *Service) ListForUser(userID uint) ([]Grant, error) {
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user id is required")
	}

	rules, err := s.enforcer.GetFilteredPolicy(0, SubjectForUser(userID))
	if err != nil {
		return nil, fmt.Errorf("list permissions failed: %w", err)
	}

	grants := make([]Grant, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		grants = append(grants, Grant{
			Subject: strings.TrimSpace(rule[0]),
			Object:  strings.TrimSpace(rule[1]),
			Action:  strings.TrimSpace(rule[2]),
		})
	}
	sort.Slice(grants, func(i, j int) bool {
		if grants[i].Object == grants[j].Object {
			return grants[i].Action < grants[j].Action
		}
		return grants[i].Object < grants[j].Object
	})
	return grants, nil
}

// ReloadPolicy re-reads all rules from storage.
func (s *Service) ReloadPolicy() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.LoadPolicy()
}

// SubjectForUser builds the policy subject for a user ID.
func SubjectForUser(userID uint) string {
	return fmt.Sprintf(userSubjectFmt, userID)
}

// NormalizeObject lowercases and trims a model object name.
func NormalizeObject(object string) string {
	return strings.ToLower(strings.TrimSpace(object))
}

// NormalizeAction lowercases and trims an action name.
func NormalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
