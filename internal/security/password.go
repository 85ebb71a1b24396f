package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var errNonPositiveLength = errors.New("length must be positive")

// TemporaryPassword returns a cryptographically secure password drawn from an
// alphabet without ambiguous characters.
func TemporaryPassword(length int) (string, error) {
	if length <= 0 {
		return "", errNonPositiveLength
	}

	limit := big.NewInt(int64(len(temporaryPasswordAlphabet)))
	password := make([]byte, length)
	for index := range password {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		password[index] = temporaryPasswordAlphabet[position.Int64()]
	}
	return string(password), nil
}
