// Package authz decides which console views and actions each role may use.
package authz

import (
	"embed"
	"os"
	"path/filepath"

	"worknest-console/internal/models"

	"github.com/casbin/casbin/v3"
)

//go:embed model.conf policy.csv
var embedFS embed.FS

// Resources.
const (
	Profile           = "profile"
	Nav               = "nav"
	Upload            = "upload"
	DashboardAdmin    = "dashboard_admin"
	DashboardManager  = "dashboard_manager"
	DashboardEmployee = "dashboard_employee"
	Employees         = "employees"
	Projects          = "projects"
	Tasks             = "tasks"
	Assignments       = "assignments"
	TimeLogs          = "timelogs"
	Reports           = "reports"
	Roles             = "roles"
)

// Actions.
const (
	Read   = "read"
	Write  = "write"
	Delete = "delete"
	Status = "status"
)

// Enforcer wraps the casbin enforcer built from the embedded model and policy.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

// NewEnforcer loads the embedded model and policy. casbin reads from files,
// so both are copied to a temporary directory first.
func NewEnforcer() (*Enforcer, error) {
	dir, err := os.MkdirTemp("", "worknest-casbin-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := writeEmbedToDir(dir, "model.conf", "policy.csv"); err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(filepath.Join(dir, "model.conf"), filepath.Join(dir, "policy.csv"))
	if err != nil {
		return nil, err
	}
	return &Enforcer{enforcer: e}, nil
}

func writeEmbedToDir(dir string, names ...string) error {
	for _, name := range names {
		data, err := embedFS.ReadFile(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0600); err != nil {
			return err
		}
	}
	return nil
}

// Allow reports whether role may perform action on resource. Unknown roles never may.
func (e *Enforcer) Allow(role models.RoleCode, resource, action string) (bool, error) {
	if !role.Known() {
		return false, nil
	}
	return e.enforcer.Enforce(role.Name(), resource, action)
}
