package service

import "errors"

// ErrInvalidCredentials indicates a login attempt with a wrong email or
// password. It deliberately does not distinguish unknown users from wrong
// passwords, and covers password logins against Google-only accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")
