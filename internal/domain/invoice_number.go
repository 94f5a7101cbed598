package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	invoiceNumberPrefix = "INV-"
	// FirstInvoiceNumber is used for a business's first invoice and whenever
	// the previous number cannot be parsed.
	FirstInvoiceNumber = "INV-0001"
)

// NextInvoiceNumber derives the number that follows last.
// Numbers are zero-padded to four digits and widen past 9999.
func NextInvoiceNumber(last string) string {
	digits, ok := strings.CutPrefix(last, invoiceNumberPrefix)
	if !ok {
		return FirstInvoiceNumber
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return FirstInvoiceNumber
	}
	return fmt.Sprintf("%s%04d", invoiceNumberPrefix, n+1)
}
