package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", "inventory", time.Hour)

	token, err := m.GenerateToken("user_1", "owner@shop.test", "Owner")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID())
	assert.Equal(t, "owner@shop.test", claims.Email)
	assert.Equal(t, "Owner", claims.Name)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, err := NewManager("other", "", time.Hour).GenerateToken("user_1", "", "")
	require.NoError(t, err)

	_, err = NewManager("secret", "", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	token, err := NewManager("secret", "someone-else", time.Hour).GenerateToken("user_1", "", "")
	require.NoError(t, err)

	_, err = NewManager("secret", "inventory", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewManager("secret", "", time.Hour)
	m.ttl = -time.Minute

	token, err := m.GenerateToken("user_1", "", "")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateEmpty(t *testing.T) {
	_, err := NewManager("secret", "", 0).ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}
