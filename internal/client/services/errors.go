package services

import "errors"

// ErrNotAuthenticated is returned by operations that need a session token.
var ErrNotAuthenticated = errors.New("not authenticated")
