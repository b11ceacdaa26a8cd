// Package navigation maps (role, logical screen) pairs to concrete console
// paths. Route trees are data; unknown roles and screens fail closed to login.
package navigation

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"worknest-console/internal/models"

	"gopkg.in/yaml.v2"
)

//go:embed routes.yaml
var defaultRoutes []byte

// Logical screens.
const (
	Home         = "home"
	EmployeeList = "employee-list"
	EmployeeAdd  = "employee-add"
	EmployeeEdit = "employee-edit"
	RoleList     = "role-list"
	ProjectList  = "project-list"
	ProjectAdd   = "project-add"
	ProjectEdit  = "project-edit"
	ProjectView  = "project-view"
	TaskList     = "task-list"
	TaskAdd      = "task-add"
	TaskEdit     = "task-edit"
	TaskView     = "task-view"
	Report       = "report"
	Profile      = "profile"
	ProfileEdit  = "profile-edit"
)

// ErrUnauthorizedRole is returned for login attempts by a role with no console.
var ErrUnauthorizedRole = errors.New("Unauthorized role access.")

// Tree is the route table of one role.
type Tree struct {
	Home    string            `yaml:"home"`
	Screens map[string]string `yaml:"screens"`
}

// Table is the whole routing configuration.
type Table struct {
	LoginPath string          `yaml:"login_path"`
	Trees     map[string]Tree `yaml:"trees"`
}

// Decision is the outcome of a navigation request.
type Decision struct {
	Path    string `json:"path"`
	Allowed bool   `json:"allowed"`
}

// Policy resolves navigation targets.
type Policy struct {
	loginPath string
	trees     map[models.RoleCode]Tree
}

// Default builds the policy from the embedded route table.
func Default() (*Policy, error) {
	return Parse(defaultRoutes)
}

// Load builds the policy from a YAML file, or from the embedded table when path is empty.
func Load(path string) (*Policy, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}
	return Parse(data)
}

// Parse builds a policy from YAML. Trees are keyed by role name
// (admin, super_admin, project_manager, employee).
func Parse(data []byte) (*Policy, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse routes: %w", err)
	}
	if table.LoginPath == "" {
		table.LoginPath = "/login"
	}

	p := &Policy{loginPath: table.LoginPath, trees: make(map[models.RoleCode]Tree)}
	for name, tree := range table.Trees {
		code, ok := models.RoleFromName(name)
		if !ok {
			return nil, fmt.Errorf("routes: unknown role %q", name)
		}
		p.trees[code] = tree
	}
	return p, nil
}

// LoginPath is where every failed navigation lands.
func (p *Policy) LoginPath() string {
	return p.loginPath
}

func (p *Policy) denied() Decision {
	return Decision{Path: p.loginPath, Allowed: false}
}

// Resolve maps a logical target to the role's concrete path, filling :id
// placeholders from ids in order. An absent or unknown role, a target the
// role cannot reach, or a missing id all fail closed.
func (p *Policy) Resolve(role models.RoleCode, target string, ids ...int64) Decision {
	tree, ok := p.trees[role]
	if !ok {
		return p.denied()
	}
	template, ok := tree.Screens[target]
	if !ok {
		return p.denied()
	}

	segments := strings.Split(template, "/")
	next := 0
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if next >= len(ids) || ids[next] <= 0 {
			return p.denied()
		}
		segments[i] = strconv.FormatInt(ids[next], 10)
		next++
	}
	return Decision{Path: strings.Join(segments, "/"), Allowed: true}
}

// HomePath is the landing path after login.
func (p *Policy) HomePath(role models.RoleCode) (string, error) {
	tree, ok := p.trees[role]
	if !ok || tree.Home == "" {
		return "", ErrUnauthorizedRole
	}
	return tree.Home, nil
}

// Targets lists the screens a role can reach, sorted.
func (p *Policy) Targets(role models.RoleCode) []string {
	tree := p.trees[role]
	out := make([]string, 0, len(tree.Screens))
	for target := range tree.Screens {
		out = append(out, target)
	}
	sort.Strings(out)
	return out
}
