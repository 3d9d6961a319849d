package lineupservice

import "errors"

// ErrEventNotFound indicates the raid event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrConflictRejected indicates the mutation was built against a stale
// arrangement and a concurrent writer won. Clients refetch and retry.
var ErrConflictRejected = errors.New("lineup changed concurrently")
