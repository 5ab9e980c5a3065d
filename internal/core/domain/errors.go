package domain

import "errors"

// Authentication.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrSignatureRejected  = errors.New("service signature rejected")
	ErrForbidden          = errors.New("access forbidden")
)

// Account directory.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrRoleMismatch   = errors.New("user does not hold the required role")
	ErrInvalidProfile = errors.New("invalid profile")
)

// Alerts.
var ErrAlertNotFound = errors.New("alert not found")

// ErrUpstreamUnavailable is returned when a backing store cannot be reached.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")
