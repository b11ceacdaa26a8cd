package views

import (
	"context"
	"strings"

	"worknest-console/internal/auth"
	"worknest-console/internal/models"
	"worknest-console/internal/session"
)

// SignInResult is the outcome of a collaborator login.
type SignInResult struct {
	Values   session.Values
	Email    string
	Role     models.RoleCode
	Employee models.Employee
}

func findByEmail(employees []models.Employee, email string) *models.Employee {
	email = strings.TrimSpace(email)
	for i := range employees {
		if strings.EqualFold(strings.TrimSpace(employees[i].Email), email) {
			return &employees[i]
		}
	}
	return nil
}

// SignIn logs in against the collaborator, matches the employee record by
// email and composes the session's key space.
func (s *Service) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	login, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	claims, err := auth.ParseBackendToken(login.AccessToken)
	if err != nil {
		return nil, err
	}
	if claims.Email == "" {
		claims.Email = email
	}

	employees, err := s.client.WithToken(login.AccessToken).AllEmployees(ctx)
	if err != nil {
		return nil, err
	}
	emp := findByEmail(employees, claims.Email)

	values, err := session.Compose(login.AccessToken, claims, emp)
	if err != nil {
		return nil, err
	}
	role := claims.Role
	if role == models.RoleNone {
		role = models.RoleCode(emp.RoleID)
	}
	return &SignInResult{Values: values, Email: claims.Email, Role: role, Employee: *emp}, nil
}

// RefreshProfile re-reads the session's employee record and returns the
// display keys to rewrite.
func (s *Service) RefreshProfile(ctx context.Context, sess *session.Session) (session.Values, error) {
	employees, err := s.api(sess).AllEmployees(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		if e.EmpID == sess.EmpID && e.CompanyID == sess.CompanyID {
			return session.Profile(e), nil
		}
	}
	return nil, ErrNotFound
}
