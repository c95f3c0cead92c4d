package entity

import "time"

// Credential is the authentication record for an account. The email is stored
// split into local part and domain; the pair is unique across all credentials.
// PasswordHash is a bcrypt hash. AccountID is immutable once created.
type Credential struct {
	AccountID     string
	EmailLocal    string
	EmailDomain   string
	PasswordHash  string
	OAuthToken    string // optional external identity provider token
	OAuthProvider string
	CreatedAt     time.Time
}
