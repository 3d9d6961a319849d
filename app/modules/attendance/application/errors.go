package attendanceservice

import "errors"

// ErrEventNotFound indicates the raid event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrInvalidOutcome indicates an unknown outcome value.
var ErrInvalidOutcome = errors.New("invalid attendance outcome")

// ErrEventNotFinished indicates the event is still open for roster edits;
// outcomes are recorded once it locks or completes.
var ErrEventNotFinished = errors.New("event has not locked or completed")
