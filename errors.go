package conversation

import "fmt"

// UnsatisfiedResolutionError represents a lookup that matched no registered service.
type UnsatisfiedResolutionError struct {
	Type string
}

func (e *UnsatisfiedResolutionError) Error() string {
	return fmt.Sprintf("unable to resolve any service of type: %s", e.Type)
}

// AmbiguousResolutionError represents a lookup that matched more than one registered service.
type AmbiguousResolutionError struct {
	Type  string
	Count int
}

func (e *AmbiguousResolutionError) Error() string {
	return fmt.Sprintf("%d services available for type: %s", e.Count, e.Type)
}

// NilServiceError represents an attempt to register a nil service.
type NilServiceError struct {
	Type string
}

func (e *NilServiceError) Error() string {
	return fmt.Sprintf("nil service provided for type: %s", e.Type)
}

// SessionInvalidatedError represents a session that was invalidated while a
// conversation bound to it was still in use.
type SessionInvalidatedError struct {
	SessionID string
}

func (e *SessionInvalidatedError) Error() string {
	return fmt.Sprintf("session invalidated: %s", e.SessionID)
}

// CleanupError represents a conversation manager cleanup failure.
type CleanupError struct {
	ConversationID string
	Err            error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup failed for conversation %s: %v", e.ConversationID, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// RestoreError represents a begin-or-restore failure.
type RestoreError struct {
	ConversationID string
	Err            error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore failed for conversation %s: %v", e.ConversationID, e.Err)
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}
