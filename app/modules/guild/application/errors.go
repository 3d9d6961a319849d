package guildservice

import "errors"

// ErrGuildNotFound indicates the guild does not exist. Handlers treat this as
// a normal domain failure (publish failure event, ack message) rather than retrying.
var ErrGuildNotFound = errors.New("guild not found")

// ErrUserNotFound indicates the acting user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrPermissionDenied indicates the actor lacks the required capability.
var ErrPermissionDenied = errors.New("permission denied")
