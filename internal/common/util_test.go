package common

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	for _, n := range []int{0, 1, 16} {
		s, err := MakeRandHexString(n)
		require.NoError(t, err)
		assert.Len(t, s, 2*n)

		_, err = hex.DecodeString(s)
		assert.NoError(t, err)
	}
}

func TestMakeRandHexString_ResetTokensDiffer(t *testing.T) {
	seen := map[string]bool{}
	for range 8 {
		tok, err := MakeRandHexString(16)
		require.NoError(t, err)
		assert.False(t, seen[tok], "duplicate token %s", tok)
		seen[tok] = true
	}
}

func TestWipeByteArray(t *testing.T) {
	pw := []byte("Passw0rd!")
	WipeByteArray(pw)
	assert.Equal(t, make([]byte, 9), pw)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrorNotFound, ErrCorruptDocument, ErrValidation, ErrEmailTaken,
		ErrInvalidCredentials, ErrUserNotFound, ErrResetTokenInvalid,
		ErrNotLoggedIn, ErrUnknownFilter, ErrAmbiguousID,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
			}
		}
	}
}

func TestInvalidCredentials_MessageIsGeneric(t *testing.T) {
	assert.EqualError(t, ErrInvalidCredentials, "invalid email or password")
}
