package views

import (
	"context"
	"strings"

	"worknest-console/internal/listing"
	"worknest-console/internal/models"
	"worknest-console/internal/remote"
	"worknest-console/internal/session"
)

// EntityRole names role changes in realtime events.
const EntityRole = "role"

// builtinRoles are the privilege codes sessions are minted with.
var builtinRoles = map[int]bool{
	int(models.RoleAdmin):          true,
	int(models.RoleEmployee):       true,
	int(models.RoleProjectManager): true,
	int(models.RoleSuperAdmin):     true,
}

// seesRole reports whether a role belongs to the session's company. Roles
// without a company are shared by every company; super admins see them all.
func seesRole(sess *session.Session, r models.Role) bool {
	return sess.Role == models.RoleSuperAdmin || r.CompanyID == 0 || r.CompanyID == sess.CompanyID
}

// Roles lists the privilege levels defined for the session's company.
func (s *Service) Roles(ctx context.Context, sess *session.Session) ([]models.Role, error) {
	roles, err := s.api(sess).Roles(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Role{}
	for _, r := range roles {
		if r.CompanyID == 0 || r.CompanyID == sess.CompanyID {
			out = append(out, r)
		}
	}
	return out, nil
}

// RoleList is the role catalog, paginated by the collaborator. The
// collaborator pages across companies, so other companies' rows are dropped
// from the page for anyone but a super admin.
func (s *Service) RoleList(ctx context.Context, sess *session.Session, page int) (listing.Page[models.Role], error) {
	if page < 1 {
		page = 1
	}
	limit := s.limits.Roles
	api := s.api(sess)

	req := remote.RolePageRequest{Page: page, PageLimit: limit}
	result, err := api.RolesPage(ctx, req)
	if err != nil {
		return listing.Page[models.Role]{}, err
	}
	totalPages := listing.TotalPages(result.Total, limit)
	if len(result.Data) == 0 && result.Total > 0 && page > totalPages {
		req.Page = listing.Clamp(page, totalPages)
		if result, err = api.RolesPage(ctx, req); err != nil {
			return listing.Page[models.Role]{}, err
		}
		page = req.Page
	}
	keep := func(r models.Role) bool { return seesRole(sess, r) }
	return listing.FromServer(result.Data, result.Total, page, limit, keep, func(r models.Role) models.Role { return r }), nil
}

func (s *Service) findRole(ctx context.Context, sess *session.Session, roleID int) (*models.Role, error) {
	roles, err := s.api(sess).Roles(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if r.RoleID == roleID && seesRole(sess, r) {
			role := r
			return &role, nil
		}
	}
	return nil, ErrNotFound
}

// CreateRole adds a role. It belongs to the session's company unless a
// super admin names another one.
func (s *Service) CreateRole(ctx context.Context, sess *session.Session, req models.CreateRoleRequest) (*models.Role, error) {
	req.Role = strings.TrimSpace(req.Role)
	if req.Role == "" {
		return nil, invalid("Role name is required.")
	}
	if req.CompanyID == 0 || sess.Role != models.RoleSuperAdmin {
		req.CompanyID = sess.CompanyID
	}
	req.IsActive = true
	req.CreatedBy = sess.EmpID

	role, err := s.api(sess).CreateRole(ctx, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityRole, "created", int64(role.RoleID))
	return role, nil
}

// UpdateRole renames a role or moves it to another company. The change must
// differ from what is stored.
func (s *Service) UpdateRole(ctx context.Context, sess *session.Session, roleID int, req models.UpdateRoleRequest) (remote.Result, error) {
	current, err := s.findRole(ctx, sess, roleID)
	if err != nil {
		return nil, err
	}
	if req.Role != nil {
		name := strings.TrimSpace(*req.Role)
		if name == "" {
			return nil, invalid("Role name is required.")
		}
		req.Role = &name
	}
	if req.CompanyID != nil && sess.Role != models.RoleSuperAdmin {
		req.CompanyID = nil
	}
	renamed := req.Role != nil && *req.Role != current.Role
	moved := req.CompanyID != nil && *req.CompanyID != current.CompanyID
	if !renamed && !moved {
		return nil, invalid("New values must be different from existing ones.")
	}
	req.UpdatedBy = sess.EmpID

	res, err := s.api(sess).UpdateRole(ctx, roleID, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityRole, "updated", int64(roleID))
	return res, nil
}

// DeleteRole soft-deletes a role. The built-in privilege levels stay.
func (s *Service) DeleteRole(ctx context.Context, sess *session.Session, roleID int) (remote.Result, error) {
	if builtinRoles[roleID] {
		return nil, invalid("Built-in roles cannot be deleted.")
	}
	if _, err := s.findRole(ctx, sess, roleID); err != nil {
		return nil, err
	}
	res, err := s.api(sess).DeleteRole(ctx, roleID, sess.EmpID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess, EntityRole, "deleted", int64(roleID))
	return res, nil
}
