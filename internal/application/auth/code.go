package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

// codes are drawn from [100000, 100000+resetCodeSpan)
const resetCodeSpan = 900000

// generateResetCode draws a uniform 6-digit code in [100000, 999999].
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(resetCodeSpan))
	if err != nil {
		return "", err
	}
	return big.NewInt(100000 + n.Int64()).String(), nil
}

// hashResetCode returns the sha256 hex digest of the code's decimal string,
// the only form ever persisted.
func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
