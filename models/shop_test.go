package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestShopComparePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	shop := &Shop{Password: string(hash)}

	assert.True(t, shop.ComparePassword("hunter22"))
	assert.False(t, shop.ComparePassword("hunter2"))
	assert.False(t, shop.ComparePassword(""))
}

func TestShopJSONNeverExposesPassword(t *testing.T) {
	shop := Shop{
		Name:     "Book Corner",
		Email:    "owner@bookcorner.test",
		Password: "super-secret-hash",
	}

	data, err := json.Marshal(shop)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "super-secret-hash")
	assert.NotContains(t, string(data), "password")
}

func TestUserComparePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &User{Password: string(hash)}

	assert.True(t, user.ComparePassword("letmein"))
	assert.False(t, user.ComparePassword("LetMeIn"))
}
