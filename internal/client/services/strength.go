package services

import "unicode/utf8"

// StrengthLevel is the meter bucket a strength score falls into.
type StrengthLevel int

const (
	StrengthWeak StrengthLevel = iota
	StrengthMedium
	StrengthStrong
	StrengthVeryStrong
)

var strengthLabels = map[StrengthLevel]string{
	StrengthWeak:       "Weak password",
	StrengthMedium:     "Medium strength",
	StrengthStrong:     "Strong password",
	StrengthVeryStrong: "Very strong password",
}

func (l StrengthLevel) String() string {
	return strengthLabels[l]
}

// MinStrongScore is the lowest score accepted at signup.
const MinStrongScore = 50

// PasswordStrength scores password from 0 to 100.
//
//   - 4 points per character, up to 40
//   - 10 for [a-z], 10 for [A-Z], 10 for [0-9]
//   - 15 for anything outside [a-zA-Z0-9]
//   - 15 more once the password has 8+ characters and all four classes
func PasswordStrength(password string) int {
	score := min(utf8.RuneCountInString(password)*4, 40)

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case 'a' <= r && r <= 'z':
			lower = true
		case 'A' <= r && r <= 'Z':
			upper = true
		case '0' <= r && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	if lower {
		score += 10
	}
	if upper {
		score += 10
	}
	if digit {
		score += 10
	}
	if special {
		score += 15
	}
	if utf8.RuneCountInString(password) >= 8 && lower && upper && digit && special {
		score += 15
	}

	return min(score, 100)
}

// Strength buckets a score the way the signup meter shows it.
func Strength(score int) StrengthLevel {
	switch {
	case score < 30:
		return StrengthWeak
	case score < 60:
		return StrengthMedium
	case score < 80:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}
