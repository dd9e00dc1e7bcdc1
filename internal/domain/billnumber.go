package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BillNumberPrefix returns the INV-YYYYMM prefix for bills issued at t.
func BillNumberPrefix(t time.Time) string {
	return fmt.Sprintf("INV-%d%02d", t.Year(), int(t.Month()))
}

// NextBillNumber returns the bill number following last within the prefix's
// monthly sequence, zero-padded to four digits. When last is empty or its
// trailing sequence cannot be parsed, the sequence starts over at 0001.
func NextBillNumber(prefix, last string) string {
	seq := 1
	if last != "" {
		if i := strings.LastIndex(last, "-"); i >= 0 {
			if n, err := strconv.Atoi(last[i+1:]); err == nil {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%s-%04d", prefix, seq)
}
