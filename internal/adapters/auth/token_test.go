package auth

import (
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	user := &domain.User{ID: "user-123", Email: "u@example.com", Name: "Una"}

	token, err := issuer.Issue(user, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, "Una", claims.Name)
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"
	user := &domain.User{ID: "user-123", Email: "u@example.com", Name: "Una"}
	valid, err := NewJWTIssuer(secret).Issue(user, time.Hour)
	require.NoError(t, err)

	expiredIssuer := &jwtIssuer{secret: []byte(secret), now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
	expired, err := expiredIssuer.Issue(user, time.Hour)
	require.NoError(t, err)

	otherKey, err := NewJWTIssuer("other-secret").Issue(user, time.Hour)
	require.NoError(t, err)

	noSubject, err := NewJWTIssuer(secret).Issue(&domain.User{Email: "x@example.com"}, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-123"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    domain.Identity
		wantErr bool
	}{
		{name: "valid", token: valid, want: domain.Identity{UserID: "user-123", Email: "u@example.com", DisplayName: "Una"}},
		{name: "expired", token: expired, wantErr: true},
		{name: "wrong key", token: otherKey, wantErr: true},
		{name: "missing subject", token: noSubject, wantErr: true},
		{name: "alg none", token: none, wantErr: true},
		{name: "garbage", token: "not.a.jwt", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}

	v := NewJWTVerifier(secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Verify(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnauthenticated)
				assert.Equal(t, domain.Identity{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
