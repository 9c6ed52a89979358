package rbac_test

import (
	"testing"

	"go-hrm/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func newRbacService(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRbacService_Enforce(t *testing.T) {
	svc := newRbacService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"hr reviews leave", rbac.RoleHR, "leave", "review", true},
		{"hr manages employees", rbac.RoleHR, "employee", "delete", true},
		{"hr updates policy", rbac.RoleHR, "policy", "update", true},
		{"employee submits leave", rbac.RoleEmployee, "leave", "create", true},
		{"employee browses holidays", rbac.RoleEmployee, "holiday", "read", true},
		{"employee cannot review leave", rbac.RoleEmployee, "leave", "review", false},
		{"employee cannot edit policy", rbac.RoleEmployee, "policy", "update", false},
		{"employee cannot delete employees", rbac.RoleEmployee, "employee", "delete", false},
		{"unknown role denied", "Contractor", "leave", "create", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
