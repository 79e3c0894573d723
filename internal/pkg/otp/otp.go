package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// codeSpan is the number of distinct 6-digit codes: [100000, 999999].
const codeSpan = 900000

// NewCode returns a uniformly random 6-digit decimal code. The range
// starts at 100000, so a leading zero never occurs.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
