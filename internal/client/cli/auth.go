package cli

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/services"
	"github.com/dmitrijs2005/gophtodo/internal/common"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

const minResetPasswordLen = 8

// Signup prompts for the signup form, shows the strength meter for the chosen
// password and creates the account. A successful signup logs the user in.
func (a *App) Signup(ctx context.Context) error {
	fullname, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	a.println("  " + a.theme.strengthMeter(string(password)))

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	s, err := a.auth.Signup(ctx, services.SignupInput{
		Fullname:        fullname,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.println(a.theme.okMsg.Render("Account created."))
	if err := a.startSession(ctx, s); err != nil {
		return err
	}
	a.println(fmt.Sprintf("Welcome, %s!", s.Fullname))
	return nil
}

// Login prompts for credentials and the "remember me" choice.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := getConfirmation(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	s, err := a.auth.Login(ctx, email, string(password), remember)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if err := a.startSession(ctx, s); err != nil {
		return err
	}
	a.println(fmt.Sprintf("Welcome, %s!", s.Fullname))
	return nil
}

// Forgot issues a reset token. No mail is sent; the token is printed
// together with the command that uses it.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	token, err := a.auth.RequestPasswordReset(ctx, email)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.println(a.theme.okMsg.Render("Password reset requested."))
	a.println("Demo mode: no email is sent. To choose a new password run:")
	a.println(fmt.Sprintf("  reset %s %s", email, token))
	a.println(fmt.Sprintf("The token is valid for %s.", a.resetTTL))
	return nil
}

// Reset sets a new password. Email and token may be passed as arguments;
// missing ones are prompted for.
func (a *App) Reset(ctx context.Context, args []string) error {
	var email, token string
	var err error

	if len(args) > 0 {
		email = args[0]
	} else if email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if len(args) > 1 {
		token = args[1]
	} else if token, err = getSimpleText(a.reader, "Reset token", a.out); err != nil {
		return err
	}

	ok, err := a.auth.VerifyResetToken(ctx, email, token)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if !ok {
		a.println(a.theme.errMsg.Render("Invalid or expired reset link. Request a new one with 'forgot'."))
		return common.ErrResetTokenInvalid
	}

	password, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	a.println("  " + a.theme.strengthMeter(string(password)))

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	ve := models.NewValidationError()
	if utf8.RuneCount(password) < minResetPasswordLen {
		ve.Set(models.FieldPassword, services.MsgPasswordTooShort)
	}
	if string(password) != string(confirm) {
		ve.Set(models.FieldConfirmPassword, services.MsgPasswordMismatch)
	}
	if err := ve.Err(); err != nil {
		a.report(ctx, err)
		return err
	}

	if err := a.auth.ResetPassword(ctx, email, token, string(password)); err != nil {
		a.report(ctx, err)
		return err
	}
	a.println(a.theme.okMsg.Render("Your password has been reset. You can now log in."))
	return nil
}

// Strength rates a password without storing it.
func (a *App) Strength(ctx context.Context) error {
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.println("  " + a.theme.strengthMeter(string(password)))
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	if a.user == nil {
		return common.ErrNotLoggedIn
	}
	a.println(fmt.Sprintf("%s <%s>", a.user.Fullname, a.user.Email))
	return nil
}

// Logout ends the session in both tiers and drops the in-memory task list.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	a.tasks.Reset()
	a.user = nil
	a.println("Logged out.")
	return nil
}
