package signupservice

import "errors"

var (
	ErrSignupNotFound  = errors.New("signup not found")
	ErrEventNotFound   = errors.New("raid event not found")
	ErrDuplicateSignup = errors.New("character already signed up for this event")
	ErrInvalidRole     = errors.New("unknown role")
)
