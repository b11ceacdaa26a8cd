// Package session holds the per-login key-value store and the typed Session
// built from it once per request.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"worknest-console/internal/auth"
	"worknest-console/internal/models"
)

// Store keys.
const (
	KeyToken       = "token"
	KeyUser        = "user"
	KeyEmpID       = "empid"
	KeyCompanyID   = "companyId"
	KeyRoleID      = "roleid"
	KeyName        = "name"
	KeyPhone       = "phone"
	KeyAddress     = "address"
	KeyDescription = "description"
	KeyEmail       = "email"
	KeyImageURL    = "imageurl"
)

// ErrMissingKey marks a required key that is absent or unparsable.
var ErrMissingKey = errors.New("session key missing")

// MissingKeyError names the key that failed.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("session key %q missing or invalid", e.Key)
}

func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// KV is read access to a session's key space.
type KV interface {
	Get(key string) (string, bool)
}

// Values is a snapshot of a session's key space.
type Values map[string]string

// Get implements KV.
func (v Values) Get(key string) (string, bool) {
	s, ok := v[key]
	return s, ok
}

// User is the JSON stored under the "user" key.
type User struct {
	UserID    int64  `json:"user_id"`
	RoleID    int    `json:"role_id"`
	Email     string `json:"email"`
	CompanyID int64  `json:"company_id"`
}

// Session is the typed context every screen receives.
type Session struct {
	ID          string          `json:"id"`
	Token       string          `json:"-"`
	User        User            `json:"user"`
	EmpID       int64           `json:"empId"`
	CompanyID   int64           `json:"companyId"`
	Role        models.RoleCode `json:"roleId"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	Description string          `json:"description"`
	Email       string          `json:"email"`
	ImageURL    string          `json:"imageUrl"`
}

func requiredInt(kv KV, key string) (int64, error) {
	raw, ok := kv.Get(key)
	if !ok {
		return 0, &MissingKeyError{Key: key}
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return 0, &MissingKeyError{Key: key}
	}
	return n, nil
}

// Load builds a Session from a key space. empid, companyId and roleid are
// required; everything else is optional.
func Load(id string, kv KV) (*Session, error) {
	empID, err := requiredInt(kv, KeyEmpID)
	if err != nil {
		return nil, err
	}
	companyID, err := requiredInt(kv, KeyCompanyID)
	if err != nil {
		return nil, err
	}
	roleID, err := requiredInt(kv, KeyRoleID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        id,
		EmpID:     empID,
		CompanyID: companyID,
		Role:      models.RoleCode(roleID),
	}
	s.Token, _ = kv.Get(KeyToken)
	s.Name, _ = kv.Get(KeyName)
	s.Phone, _ = kv.Get(KeyPhone)
	s.Address, _ = kv.Get(KeyAddress)
	s.Description, _ = kv.Get(KeyDescription)
	s.Email, _ = kv.Get(KeyEmail)
	s.ImageURL, _ = kv.Get(KeyImageURL)
	if raw, ok := kv.Get(KeyUser); ok && raw != "" {
		// a corrupt user blob is not fatal; the numeric keys are authoritative
		_ = json.Unmarshal([]byte(raw), &s.User)
	}
	return s, nil
}

// Compose builds the key space written after login. companyId comes from the
// token claim, then from the employee record; with neither it is missing.
func Compose(token string, claims *auth.BackendClaims, emp *models.Employee) (Values, error) {
	if emp == nil || emp.EmpID <= 0 {
		return nil, &MissingKeyError{Key: KeyEmpID}
	}

	companyID := claims.CompanyID
	if companyID <= 0 {
		companyID = emp.CompanyID
	}
	if companyID <= 0 {
		return nil, &MissingKeyError{Key: KeyCompanyID}
	}

	role := claims.Role
	if role == models.RoleNone {
		role = models.RoleCode(emp.RoleID)
	}
	if role == models.RoleNone {
		return nil, &MissingKeyError{Key: KeyRoleID}
	}

	email := claims.Email
	if email == "" {
		email = emp.Email
	}
	user, err := json.Marshal(User{UserID: claims.UserID, RoleID: int(role), Email: email, CompanyID: companyID})
	if err != nil {
		return nil, err
	}

	values := Profile(*emp)
	values[KeyToken] = token
	values[KeyUser] = string(user)
	values[KeyEmpID] = strconv.FormatInt(emp.EmpID, 10)
	values[KeyCompanyID] = strconv.FormatInt(companyID, 10)
	values[KeyRoleID] = strconv.Itoa(int(role))
	return values, nil
}

// Profile is the set of display keys refreshed from an employee record.
func Profile(emp models.Employee) Values {
	return Values{
		KeyName:        emp.Name,
		KeyPhone:       emp.Phone,
		KeyAddress:     emp.Address,
		KeyDescription: emp.Description,
		KeyEmail:       emp.Email,
		KeyImageURL:    emp.ImageURL,
	}
}
