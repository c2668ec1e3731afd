package jwt

import (
	"testing"
	"time"

	"travel-po/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	signed, claims, err := mgr.IssueUserToken("op-1", user.RoleOperator, "PO123")
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.Equal(t, "op-1", claims.Subject)

	_, parsed, err := mgr.ParseAndValidate(signed)
	require.NoError(t, err)
	assert.Equal(t, "op-1", parsed.Subject)
	assert.Equal(t, user.RoleOperator, parsed.Role)
	assert.Equal(t, "PO123", parsed.CompanyCode)
}

func TestIssueUserTokenRejectsInvalidRole(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	_, _, err := mgr.IssueUserToken("u-1", user.Role("ADMIN"), "")
	require.Error(t, err)
}

func TestParseAndValidateRejectsWrongSecret(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	signed, _, err := mgr.IssueUserToken("stu-1", user.RoleStudent, "")
	require.NoError(t, err)

	_, _, err = other.ParseAndValidate(signed)
	require.Error(t, err)
}

func TestParseAndValidateRejectsExpiredToken(t *testing.T) {
	mgr := NewManager("test-secret", -time.Minute)

	signed, _, err := mgr.IssueUserToken("drv-1", user.RoleDriver, "")
	require.NoError(t, err)

	_, _, err = mgr.ParseAndValidate(signed)
	require.Error(t, err)
}

func TestRoleAllowed(t *testing.T) {
	cl := NewUserClaims("drv-1", user.RoleDriver, "", time.Hour)

	require.NoError(t, RoleAllowed(cl, user.RoleOperator, user.RoleDriver))
	assert.ErrorIs(t, RoleAllowed(cl, user.RoleOperator), ErrRoleForbidden)
}
