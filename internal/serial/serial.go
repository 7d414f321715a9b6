// Package serial allocates the human-facing identifiers printed on
// showroom paperwork: booking numbers and invoice numbers.
package serial

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// bookingBase seeds the sequence when no booking exists yet or
	// the latest number cannot be parsed.
	bookingBase = 999
	// bookingFloor lifts the sequence into the five-digit series the
	// printed letters use.
	bookingFloor = 10000
)

// NextBookingNumber derives the next booking number from the most
// recently issued one. Non-digit prefixes like "BK-" are ignored; an
// empty or unparseable input restarts the sequence at its base.
//
// Allocation is read-then-insert, so it assumes a single writer; the
// unique index on the booking number column turns a lost race into a
// duplicate-key error instead of a silent double issue.
func NextBookingNumber(last string) string {
	n := bookingBase
	if digits := digitsOf(last); digits != "" {
		if v, err := strconv.Atoi(digits); err == nil {
			n = v
		}
	}
	n++
	if n < bookingFloor {
		n += bookingFloor
	}
	return strconv.Itoa(n)
}

// digitsOf returns the trailing run of digits in s, so a prefixed
// number like "BK-11005" reads as 11005 and any earlier digit groups
// are ignored.
func digitsOf(s string) string {
	end := len(s)
	for end > 0 && !isDigit(s[end-1]) {
		end--
	}
	start := end
	for start > 0 && isDigit(s[start-1]) {
		start--
	}
	return s[start:end]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// InvoiceNumber builds the invoice identifier for a sale. The source
// inventory id keeps it traceable; the timestamp keeps re-issues for
// the same bike distinct.
func InvoiceNumber(inventoryID int64, at time.Time) string {
	return fmt.Sprintf("INV-%d-%d", inventoryID, at.Unix())
}
