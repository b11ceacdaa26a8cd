package auth

import (
	"testing"
	"time"

	"worknest-console/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("3f0c6a1e-session", models.RoleProjectManager, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "3f0c6a1e-session", claims.SessionID)
	require.Equal(t, models.RoleProjectManager, claims.Role)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken("s-1", models.RoleAdmin, -time.Hour)
	require.NoError(t, err)
	// a non-positive ttl falls back to the default lifetime
	_, err = ValidateToken(token)
	require.NoError(t, err)

	claims := Claims{
		SessionID: "s-2",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	require.NoError(t, err)
	_, err = ValidateToken(expired)
	require.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	claims := Claims{
		SessionID: "s-3",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{"someone-else"},
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	require.NoError(t, err)
	_, err = ValidateToken(token)
	require.Error(t, err)
}

func TestParseBackendToken(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        "priya@acme.io",
		"user_id":    41,
		"role":       11,
		"company_id": "3",
	}).SignedString([]byte("collaborator-secret"))
	require.NoError(t, err)

	claims, err := ParseBackendToken(raw)
	require.NoError(t, err)
	require.Equal(t, "priya@acme.io", claims.Email)
	require.Equal(t, int64(41), claims.UserID)
	require.Equal(t, models.RoleProjectManager, claims.Role)
	require.Equal(t, int64(3), claims.CompanyID)
}

func TestParseBackendToken_Garbage(t *testing.T) {
	_, err := ParseBackendToken("not-a-jwt")
	require.Error(t, err)
}
