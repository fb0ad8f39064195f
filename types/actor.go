package types

// Actor identifies who performed a request and from where. It is the
// audit-facing view of an authenticated principal.
type Actor struct {
	UserID    *int
	Username  string
	IPAddress *string
	UserAgent *string
}
