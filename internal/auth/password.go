package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword salts with a fresh random salt on every call, so two
// hashes of the same password never compare equal as strings.
func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
