package service

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt work factor for passwords and refresh tokens at rest.
// Existing stored hashes encode their own cost, so this can be raised safely.
const hashCost = 10

// HashSecret one-way hashes a secret for storage. Used for user passwords and
// for refresh tokens at rest.
func HashSecret(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CompareSecret reports whether plaintext matches digest. bcrypt's comparison
// is constant-time over the derived key; callers see only the boolean.
func CompareSecret(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
