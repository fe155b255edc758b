package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

const principalID = "65a1b2c3d4e5f6a7b8c9d0a1"

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager("admin-secret", "user-secret", time.Hour)
	require.NoError(t, err)
	return tm
}

func TestIssueAndVerify(t *testing.T) {
	tm := newTestManager(t)

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleUser} {
		token, exp, err := tm.Issue(principalID, role)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		id, err := tm.Verify(token, role)
		require.NoError(t, err)
		assert.Equal(t, principalID, id)
	}
}

func TestTokenDoesNotCrossRoles(t *testing.T) {
	tm := newTestManager(t)

	adminToken, _, err := tm.Issue(principalID, domain.RoleAdmin)
	require.NoError(t, err)
	userToken, _, err := tm.Issue(principalID, domain.RoleUser)
	require.NoError(t, err)

	_, err = tm.Verify(adminToken, domain.RoleUser)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.Verify(userToken, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRoleClaimMustMatch(t *testing.T) {
	tm := newTestManager(t)

	// Signed with the admin secret but claiming the user role.
	claims := &Claims{
		PrincipalID: principalID,
		Role:        domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("admin-secret"))
	require.NoError(t, err)

	_, err = tm.Verify(forged, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	tm := newTestManager(t)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := tm.Issue(principalID, domain.RoleUser)
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.Verify(token, domain.RoleUser)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbageAndEmpty(t *testing.T) {
	tm := newTestManager(t)

	_, err := tm.Verify("", domain.RoleUser)
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = tm.Verify("not.a.jwt", domain.RoleUser)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{PrincipalID: principalID, Role: domain.RoleUser}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Verify(none, domain.RoleUser)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerRejectsSharedSecret(t *testing.T) {
	_, err := NewTokenManager("same", "same", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager("", "user", time.Hour)
	assert.Error(t, err)
}

func TestUnknownRole(t *testing.T) {
	tm := newTestManager(t)

	_, _, err := tm.Issue(principalID, domain.Role("staff"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password1", 4)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "password1"))
	assert.Error(t, ComparePassword(hash, "password2"))
}
