package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "orgnet/pkg/domain-errors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("test-signing-key", "orgnet", "orgnet-api")

	token, err := svc.GenerateAccessToken("0xissuer", []string{"approver"}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "0xissuer", claims.Subject)
	assert.Equal(t, []string{"approver"}, claims.Roles)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService("test-signing-key", "orgnet", "orgnet-api")

	token, err := svc.GenerateAccessToken("0xissuer", nil, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func TestValidateWrongKey(t *testing.T) {
	issuerSvc := NewService("key-a", "orgnet", "orgnet-api")
	verifySvc := NewService("key-b", "orgnet", "orgnet-api")

	token, err := issuerSvc.GenerateAccessToken("0xissuer", nil, time.Hour)
	require.NoError(t, err)

	_, err = verifySvc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func TestMiddlewareAdapterMapsRoles(t *testing.T) {
	svc := NewService("test-signing-key", "orgnet", "orgnet-api")
	adapter := NewMiddlewareAdapter(svc)

	token, err := svc.GenerateAccessToken("0xapprover", []string{"approver"}, time.Hour)
	require.NoError(t, err)

	claims, err := adapter.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, "0xapprover", claims.Principal)
	assert.True(t, claims.Roles.Has("approver"))
}
