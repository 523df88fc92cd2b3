package domain

// Principal is the authenticated caller derived from a verified token.
// It lives only for the duration of one request and is never persisted.
type Principal struct {
	UserID string
	Email  string
}
