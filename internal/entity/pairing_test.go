package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	low, high := CanonicalPair(7, 3)
	assert.Equal(t, uint(3), low)
	assert.Equal(t, uint(7), high)

	low, high = CanonicalPair(3, 7)
	assert.Equal(t, uint(3), low)
	assert.Equal(t, uint(7), high)
}

func TestPairingOtherUserID(t *testing.T) {
	pairing := Pairing{UserLowID: 3, UserHighID: 7}

	other, ok := pairing.OtherUserID(3)
	assert.True(t, ok)
	assert.Equal(t, uint(7), other)

	other, ok = pairing.OtherUserID(7)
	assert.True(t, ok)
	assert.Equal(t, uint(3), other)

	_, ok = pairing.OtherUserID(42)
	assert.False(t, ok)
}

func TestPairingHasUser(t *testing.T) {
	pairing := Pairing{UserLowID: 3, UserHighID: 7}

	assert.True(t, pairing.HasUser(3))
	assert.True(t, pairing.HasUser(7))
	assert.False(t, pairing.HasUser(42))
}
