package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndCompare(t *testing.T) {
	svc := NewBcryptService(bcrypt.MinCost)

	hash, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, svc.Compare(hash, "correct horse battery staple"))
	assert.Error(t, svc.Compare(hash, "wrong password"))
}

func TestBcryptInvalidCostFallsBack(t *testing.T) {
	svc := NewBcryptService(99)

	hash, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCompareRejectsNonHash(t *testing.T) {
	svc := NewBcryptService(bcrypt.MinCost)
	assert.Error(t, svc.Compare("not-a-bcrypt-hash", "anything"))
}
