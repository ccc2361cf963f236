package types

// TaskID is an opaque dense integer identifying a running task frame,
// unique across the lifetime of a single runtime — distinct replicas of
// a replicated task definition get distinct ids. It is a newtype over
// int64 (not a bare int) so task identity can't be confused with an
// arbitrary integer at the type level, matching the original
// interpreter's TaskID(pub usize) newtype.
type TaskID int64
