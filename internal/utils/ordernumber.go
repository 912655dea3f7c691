package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber returns a display number like HG-20261015-153012-4821.
// The time part uses Korea Standard Time so numbers match the seller's calendar.
func GenerateOrderNumber(now time.Time) string {
	kst := now.In(KST)

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("HG-%s-%04d", kst.Format("20060102-150405"), n.Int64())
}
