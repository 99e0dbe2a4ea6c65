package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Unambiguous alphabet: no 0/O, 1/l/I. The generated password is shown to
// the customer exactly once on the confirmation screen.
const passwordAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// GeneratePassword returns a random credential for auto-provisioned
// accounts. Plate-derived passwords are guessable from the booking itself,
// so the password is always random.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = 12
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("error generating password: %w", err)
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
