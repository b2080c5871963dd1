package model

// Scope carries the identity of the caller through use cases.
// It is populated by the auth middleware from the verified bearer token.
type Scope struct {
	UserID string
}
