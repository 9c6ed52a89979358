package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

const (
	RoleHR       = "HR"
	RoleEmployee = "Employee"
)

// defaultPolicies is the static permission table. HR manages everything;
// employees can raise leave requests and browse the calendar.
var defaultPolicies = [][3]string{
	{RoleHR, "employee", "read"},
	{RoleHR, "employee", "create"},
	{RoleHR, "employee", "update"},
	{RoleHR, "employee", "delete"},
	{RoleHR, "leave", "read"},
	{RoleHR, "leave", "create"},
	{RoleHR, "leave", "review"},
	{RoleHR, "holiday", "read"},
	{RoleHR, "holiday", "create"},
	{RoleHR, "holiday", "update"},
	{RoleHR, "holiday", "delete"},
	{RoleHR, "policy", "read"},
	{RoleHR, "policy", "update"},
	{RoleHR, "report", "read"},

	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "holiday", "read"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
