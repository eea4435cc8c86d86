package password

import "golang.org/x/crypto/bcrypt"

const (
	Cost = 10

	maxLength = 72
)

// Hash returns the bcrypt hash stored in usuarios.password.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the encoded bcrypt hash.
func Verify(plain, encoded string) bool {
	if encoded == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain))
	return err == nil
}

// IsTooLong reports whether bcrypt would reject plain.
func IsTooLong(plain string) bool {
	return len(plain) > maxLength
}
