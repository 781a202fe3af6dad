package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"a", 14},
		{"abc", 22},
		{"aaaaaaaa", 42},
		{"Aa1!aaaa", 92},
		{"Password1", 66},
		{"password", 42},
		{"Passw0rd!", 96},
		// no bonus below 8 chars
		{"Aa1!", 61},
		// length part capped at 40
		{"ABCDEFGHIJKLMNOPQRSTUVWXYZ", 50},
		{"Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!", 100},
		// non-ASCII letters count as special
		{"пароль12", 57},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordStrength(tt.password))
		})
	}
}

func TestPasswordStrength_WeakerThanMixed(t *testing.T) {
	assert.Less(t, PasswordStrength("aaaaaaaa"), PasswordStrength("Aa1!aaaa"))
}

func TestStrength_Buckets(t *testing.T) {
	tests := []struct {
		score int
		want  StrengthLevel
		label string
	}{
		{0, StrengthWeak, "Weak password"},
		{29, StrengthWeak, "Weak password"},
		{30, StrengthMedium, "Medium strength"},
		{59, StrengthMedium, "Medium strength"},
		{60, StrengthStrong, "Strong password"},
		{79, StrengthStrong, "Strong password"},
		{80, StrengthVeryStrong, "Very strong password"},
		{100, StrengthVeryStrong, "Very strong password"},
	}
	for _, tt := range tests {
		got := Strength(tt.score)
		assert.Equal(t, tt.want, got, "score %d", tt.score)
		assert.Equal(t, tt.label, got.String())
	}
}
