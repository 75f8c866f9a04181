// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const tempPasswordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// GenerateTemporaryPassword builds a random password for invited users.
// Ambiguous characters (0, O, 1, l, I) are excluded from the charset.
func GenerateTemporaryPassword(length int) (string, error) {
	if length < 12 {
		length = 12
	}

	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tempPasswordCharset))))
		if err != nil {
			return "", err
		}
		password[i] = tempPasswordCharset[n.Int64()]
	}

	return string(password), nil
}
