package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	otpFloor = 100000
	otpSpan  = 900000
)

// GenerateOTP returns a random six digit code in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpFloor, 10), nil
}
