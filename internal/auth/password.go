package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt digest of the password. bcrypt embeds a random
// salt, so two calls on the same input produce different digests that both verify.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt digest.
// The comparison inside bcrypt is constant-time.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
