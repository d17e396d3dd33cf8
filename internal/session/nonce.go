package session

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// NonceLength is the length of the state parameter sent with every login.
const NonceLength = 16

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// IndexFunc returns a pseudo-random index in [0, n).
type IndexFunc func(n int) int

// GenerateRandomString returns length characters drawn from [A-Za-z0-9] using intn to pick each one.
//
// A nil intn uses crypto/rand.
func GenerateRandomString(length int, intn IndexFunc) string {
	if intn == nil {
		intn = cryptoIntn
	}

	var b strings.Builder
	b.Grow(max(length, 0))
	for i := 0; i < length; i++ {
		b.WriteByte(alphabet[intn(len(alphabet))])
	}
	return b.String()
}

func cryptoIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("session: crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}
