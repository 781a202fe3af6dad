// Package services contains the application services behind the gophtodo
// REPL. This file defines the authentication service: signup, login and
// logout, the password reset flow, and the current-user lookup.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/users"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/cryptox"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/timex"
	"github.com/google/uuid"
)

// User-facing field messages.
const (
	MsgNameTooShort      = "Name must be at least 3 characters"
	MsgInvalidEmail      = "Please enter a valid email address"
	MsgEmailTaken        = "This email is already registered"
	MsgPasswordTooShort  = "Password must be at least 8 characters"
	MsgPasswordTooWeak   = "Please use a stronger password"
	MsgPasswordMismatch  = "Passwords do not match"
	MsgPasswordRequired  = "Please enter your password"
	MsgInvalidLogin      = "Invalid email or password"
	MsgNoAccountForEmail = "No account found with this email address"
)

const (
	minFullnameLen = 3
	minPasswordLen = 8

	// DefaultResetTokenTTL is how long a reset token stays valid.
	DefaultResetTokenTTL = 24 * time.Hour
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// SignupInput is the signup form.
type SignupInput struct {
	Fullname        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthService defines the account operations of the CLI.
//
// Contract:
//   - Signup: validate the form, store the user and start a session.
//   - Login: check credentials and start a session, optionally remembered.
//   - Logout: end the session in both tiers.
//   - RequestPasswordReset: issue a reset token for a registered email.
//   - VerifyResetToken: check an email/token pair against the stored expiry.
//   - ResetPassword: replace the password given a valid token.
//   - CurrentUser: the logged-in user, or nil.
//
// Form problems are reported as *models.ValidationError.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*models.Session, error)
	Login(ctx context.Context, email, password string, rememberMe bool) (*models.Session, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	VerifyResetToken(ctx context.Context, email, token string) (bool, error)
	ResetPassword(ctx context.Context, email, token, newPassword string) error
	CurrentUser(ctx context.Context) (*models.Session, error)
}

type authService struct {
	users    users.Repository
	sessions sessions.Repository
	encoder  cryptox.PasswordEncoder
	clock    timex.Clock
	resetTTL time.Duration
	log      logging.Logger

	newID    func() string
	newToken func() (string, error)
}

// NewAuthService wires an AuthService. A zero resetTTL means
// DefaultResetTokenTTL.
func NewAuthService(
	u users.Repository,
	s sessions.Repository,
	enc cryptox.PasswordEncoder,
	clock timex.Clock,
	resetTTL time.Duration,
	log logging.Logger,
) AuthService {
	if resetTTL <= 0 {
		resetTTL = DefaultResetTokenTTL
	}
	return &authService{
		users:    u,
		sessions: s,
		encoder:  enc,
		clock:    clock,
		resetTTL: resetTTL,
		log:      log.With("service", "auth"),
		newID:    uuid.NewString,
		newToken: func() (string, error) { return common.MakeRandHexString(16) },
	}
}

func (a *authService) Signup(ctx context.Context, in SignupInput) (*models.Session, error) {
	fullname := strings.TrimSpace(in.Fullname)
	email := strings.TrimSpace(in.Email)

	existing, err := a.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	ve := models.NewValidationError()
	if utf8.RuneCountInString(fullname) < minFullnameLen {
		ve.Set(models.FieldFullname, MsgNameTooShort)
	}
	if !ValidEmail(email) {
		ve.Set(models.FieldEmail, MsgInvalidEmail)
	}
	for _, u := range existing {
		if u.Email == email {
			ve.Set(models.FieldEmail, MsgEmailTaken)
			ve.Cause = common.ErrEmailTaken
			break
		}
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		ve.Set(models.FieldPassword, MsgPasswordTooShort)
	} else if PasswordStrength(in.Password) < MinStrongScore {
		ve.Set(models.FieldPassword, MsgPasswordTooWeak)
	}
	if in.Password != in.ConfirmPassword {
		ve.Set(models.FieldConfirmPassword, MsgPasswordMismatch)
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	encoded, err := a.encoder.Encode(in.Password)
	if err != nil {
		return nil, fmt.Errorf("encode password: %w", err)
	}

	user := models.User{
		ID:        a.newID(),
		Fullname:  fullname,
		Email:     email,
		Password:  encoded,
		CreatedAt: a.clock.Now().UTC(),
	}
	if err := a.users.Add(ctx, user); err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, models.FieldError(models.FieldEmail, MsgEmailTaken, err)
		}
		return nil, fmt.Errorf("save user: %w", err)
	}

	s := user.Session()
	if err := a.sessions.Save(ctx, s, false); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	a.log.Info(ctx, "user signed up", "user_id", user.ID)
	return &s, nil
}

func (a *authService) Login(ctx context.Context, email, password string, rememberMe bool) (*models.Session, error) {
	email = strings.TrimSpace(email)

	ve := models.NewValidationError()
	if !ValidEmail(email) {
		ve.Set(models.FieldEmail, MsgInvalidEmail)
	}
	if password == "" {
		ve.Set(models.FieldPassword, MsgPasswordRequired)
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, common.ErrUserNotFound) {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if user == nil || !a.encoder.Matches(user.Password, password) {
		a.log.Debug(ctx, "login rejected")
		return nil, models.FieldError(models.FieldPassword, MsgInvalidLogin, common.ErrInvalidCredentials)
	}

	s := user.Session()
	if err := a.sessions.Save(ctx, s, rememberMe); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	a.log.Info(ctx, "user logged in", "user_id", user.ID, "remember", rememberMe)
	return &s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.log.Info(ctx, "user logged out")
	return nil
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return "", models.FieldError(models.FieldEmail, MsgInvalidEmail, nil)
	}

	token, err := a.newToken()
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	expires := a.clock.Now().Add(a.resetTTL).UTC()

	err = a.users.Update(ctx, email, func(u *models.User) error {
		u.ResetToken = token
		u.ResetExpires = &expires
		return nil
	})
	if errors.Is(err, common.ErrUserNotFound) {
		return "", models.FieldError(models.FieldEmail, MsgNoAccountForEmail, err)
	}
	if err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}

	a.log.Info(ctx, "password reset requested", "expires", expires)
	return token, nil
}

// tokenValid checks u's pending reset against token at now.
func tokenValid(u *models.User, token string, now time.Time) bool {
	if token == "" || u.ResetToken == "" || u.ResetExpires == nil {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(u.ResetToken), []byte(token)) != 1 {
		return false
	}
	return !now.After(*u.ResetExpires)
}

func (a *authService) VerifyResetToken(ctx context.Context, email, token string) (bool, error) {
	u, err := a.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, common.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load users: %w", err)
	}
	return tokenValid(u, token, a.clock.Now()), nil
}

func (a *authService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	now := a.clock.Now()

	err := a.users.Update(ctx, strings.TrimSpace(email), func(u *models.User) error {
		if !tokenValid(u, token, now) {
			return common.ErrResetTokenInvalid
		}
		encoded, err := a.encoder.Encode(newPassword)
		if err != nil {
			return fmt.Errorf("encode password: %w", err)
		}
		u.Password = encoded
		u.ClearReset()
		return nil
	})
	switch {
	case errors.Is(err, common.ErrUserNotFound):
		return common.ErrResetTokenInvalid
	case err != nil:
		return err
	}

	a.log.Info(ctx, "password reset")
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.Session, error) {
	s, err := a.sessions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}
