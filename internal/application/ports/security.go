package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates JWTs (HS256). Tokens carry only the user
// id; nothing in the API consumes them after issuance.
type TokenIssuer interface {
	IssueAccessToken(userID string) (string, error)
	ValidateAccessToken(tokenString string) (userID string, err error)
}
