package utils

import (
	"fmt"
	"strings"
	"time"
)

// OrderNumber formats an order number as ORD-YYYY-NNNN.
func OrderNumber(t time.Time, seq int) string {
	return fmt.Sprintf("ORD-%d-%04d", t.Year(), seq)
}

// NextOrderNumber returns the number following last within the year of now.
// A last number from another year, or one that cannot be parsed, restarts
// the sequence at 0001.
func NextOrderNumber(last string, now time.Time) string {
	prefix := fmt.Sprintf("ORD-%d-", now.Year())
	if !strings.HasPrefix(last, prefix) {
		return OrderNumber(now, 1)
	}

	var lastSeq int
	if _, err := fmt.Sscanf(last, prefix+"%d", &lastSeq); err != nil {
		return OrderNumber(now, 1)
	}
	return OrderNumber(now, lastSeq+1)
}
