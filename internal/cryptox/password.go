// Package cryptox holds the password encoders used by the auth service.
//
// LegacyEncoder reproduces the demo encoding the stored user table was
// written with: base64 of the password plus a fixed suffix. It is reversible
// and offers no protection. BcryptEncoder is an opt-in replacement; values it
// writes cannot be checked by LegacyEncoder and the other way round.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Encoding names accepted by NewPasswordEncoder.
const (
	EncodingLegacy = "legacy"
	EncodingBcrypt = "bcrypt"
)

const legacySuffix = "salt123"

// PasswordEncoder turns a plain password into its stored form and checks a
// candidate against a stored value.
type PasswordEncoder interface {
	Encode(password string) (string, error)
	Matches(encoded, password string) bool
}

// NewPasswordEncoder returns the encoder registered under name.
func NewPasswordEncoder(name string) (PasswordEncoder, error) {
	switch strings.ToLower(name) {
	case "", EncodingLegacy:
		return LegacyEncoder{}, nil
	case EncodingBcrypt:
		return BcryptEncoder{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password encoding %q", name)
	}
}

// LegacyEncoder is base64(password + "salt123").
type LegacyEncoder struct{}

func (LegacyEncoder) Encode(password string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(password + legacySuffix)), nil
}

func (e LegacyEncoder) Matches(encoded, password string) bool {
	candidate, _ := e.Encode(password)
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(candidate)) == 1
}

// BcryptEncoder stores bcrypt hashes.
type BcryptEncoder struct {
	Cost int
}

func (e BcryptEncoder) Encode(password string) (string, error) {
	cost := e.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(h), nil
}

func (BcryptEncoder) Matches(encoded, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}
