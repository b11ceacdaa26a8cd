package auth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"worknest-console/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret   = []byte(getEnv("JWT_SECRET", "development-insecure-secret-change-me"))
	jwtIssuer   = getEnv("JWT_ISSUER", "worknest-console")
	jwtAudience = getEnv("JWT_AUDIENCE", "worknest-console-browser")
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Claims are the claims of a console token. The token only names the
// session; everything else is read from the session store.
type Claims struct {
	SessionID string          `json:"sid"`
	Role      models.RoleCode `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a console token for a session.
func GenerateToken(sessionID string, role models.RoleCode, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	issued := time.Now()
	claims := Claims{
		SessionID: sessionID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken validates a console token and returns its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return jwtSecret, nil
	}, jwt.WithIssuer(jwtIssuer), jwt.WithAudience(jwtAudience))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// BackendClaims are the claims the collaborator puts in its access token.
// Absent claims stay zero.
type BackendClaims struct {
	Email     string
	UserID    int64
	Role      models.RoleCode
	CompanyID int64
}

// ParseBackendToken reads the collaborator's token claims. The signature is
// not checked: the console does not hold the collaborator's key, and the
// collaborator re-validates the token on every call.
func ParseBackendToken(tokenString string) (*BackendClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("decode backend token: %w", err)
	}

	out := &BackendClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Email = sub
	}
	out.UserID = claimInt(claims, "user_id")
	out.Role = models.RoleCode(claimInt(claims, "role"))
	if out.Role == models.RoleNone {
		out.Role = models.RoleCode(claimInt(claims, "role_id"))
	}
	out.CompanyID = claimInt(claims, "company_id")
	return out, nil
}

// claimInt accepts numeric claims encoded either as JSON numbers or strings.
func claimInt(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
