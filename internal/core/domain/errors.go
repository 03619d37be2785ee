package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already taken")
	ErrUserInactive       = errors.New("account deactivated")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrPostNotFound   = errors.New("post not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrGenreNotFound  = errors.New("genre not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrTaskNotFound   = errors.New("task not found")

	ErrForbidden = errors.New("access forbidden")
)
