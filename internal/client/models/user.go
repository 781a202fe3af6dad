// Package models defines the records gophtodo keeps in local storage and the
// view models handed to the CLI.
package models

import "time"

// User is one row of the locally stored user table (key "todo-users").
// Password holds the encoder output, never the plain password.
type User struct {
	ID        string    `json:"id"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`

	// ResetToken and ResetExpires are set only while a password reset is pending.
	ResetToken   string     `json:"resetToken,omitempty"`
	ResetExpires *time.Time `json:"resetExpires,omitempty"`
}

// Session returns the password-free view of u.
func (u User) Session() Session {
	return Session{ID: u.ID, Fullname: u.Fullname, Email: u.Email}
}

// ClearReset drops any pending reset token.
func (u *User) ClearReset() {
	u.ResetToken = ""
	u.ResetExpires = nil
}

// Session is the "current user" view model stored in both session tiers.
type Session struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}
