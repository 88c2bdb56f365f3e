package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP returns a 6-digit numeric code, zero-padded.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
