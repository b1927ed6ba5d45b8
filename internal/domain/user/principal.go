package user

// Principal identifies the authenticated caller. The user id is an opaque
// string issued by the external identity provider.
type Principal struct {
	UserID string
	Email  string
}
