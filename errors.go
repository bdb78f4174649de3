package gcarena

// UsageError reports a misuse of the arena/owner/managed-pointer API: an
// untraced mutable borrow of a traceable type, a realm mismatch between a
// pointer and the arena or owner it's used with, a size mismatch during
// Rebind, or a root guard released out of order. These are programmer
// errors, not runtime faults, and are always panicked rather than
// returned.
type UsageError string

func (e UsageError) Error() string { return string(e) }
