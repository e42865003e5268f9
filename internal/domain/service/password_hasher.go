package service

// PasswordHasher hashes and verifies staff passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) error
}
