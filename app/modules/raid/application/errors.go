package raidservice

import "errors"

// ErrRaidNotFound indicates the event does not exist. Handlers treat this as
// a normal domain failure rather than retrying.
var ErrRaidNotFound = errors.New("raid event not found")

// ErrStatusConflict indicates a concurrent status change won the race.
var ErrStatusConflict = errors.New("event status changed concurrently")
