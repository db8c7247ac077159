package applications

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns nine random base-36 characters followed by the base-36 creation time.
func NewID(now time.Time) string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = base36[rand.IntN(len(base36))]
	}
	return string(b) + strconv.FormatInt(now.UnixMilli(), 36)
}
