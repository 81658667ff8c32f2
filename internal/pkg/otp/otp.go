package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generate returns a 6-digit numeric code drawn uniformly from
// [100000, 999999]. Each channel gets its own independent code.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
