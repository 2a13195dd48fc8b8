package domain

// User is the identity record created at registration and read at login.
// PasswordHash is never serialized outward.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
}
