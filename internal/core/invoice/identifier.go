// Package invoice contains the pure invoice-naming engine: parsing
// identifiers, normalizing and advancing billing periods, and generating
// the next identifier from history.
// This is part of the Functional Core - no I/O, only pure functions.
package invoice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/example/invoicer/internal/core/company"
)

// Prefix is the literal start of every invoice identifier.
const Prefix = "INVOICE_FAB_SAMPERI_"

// MaxNumber is the largest sequence number the 3-digit field can carry.
const MaxNumber = 999

var identifierPattern = regexp.MustCompile(`^` + Prefix + `([A-Z]{3})(\d{3})_(\d{2}-\d{2}-\d{2})_\((.+)\)$`)

// Invoice is a parsed (or freshly generated) invoice identifier.
type Invoice struct {
	FullString  string
	Acronym     string
	Number      int
	Date        string // DD-MM-YY
	Period      string
	CompanyName string
}

// Parse turns a raw line into an Invoice. It returns false for anything
// that does not match the identifier grammar exactly.
func Parse(raw string, reg company.Registry) (Invoice, bool) {
	trimmed := strings.TrimSpace(raw)
	m := identifierPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Invoice{}, false
	}

	number, err := strconv.Atoi(m[2])
	if err != nil {
		return Invoice{}, false
	}

	return Invoice{
		FullString:  trimmed,
		Acronym:     m[1],
		Number:      number,
		Date:        m[3],
		Period:      m[4],
		CompanyName: reg.DisplayName(m[1]),
	}, true
}

// ParseAll parses every entry, silently dropping the ones that don't parse.
func ParseAll(history []string, reg company.Registry) []Invoice {
	out := make([]Invoice, 0, len(history))
	for _, raw := range history {
		if inv, ok := Parse(raw, reg); ok {
			out = append(out, inv)
		}
	}
	return out
}

// Format assembles an identifier string from its fields.
func Format(acronym string, number int, date, period string) string {
	return fmt.Sprintf("%s%s%03d_%s_(%s)", Prefix, acronym, number, date, period)
}

// String renders the invoice back into identifier form.
func (i Invoice) String() string {
	return Format(i.Acronym, i.Number, i.Date, i.Period)
}

// IssuedOn returns the calendar date of the invoice. The 2-digit year is
// read as 2000+YY. Returns the zero time if the date field is malformed.
func (i Invoice) IssuedOn() time.Time {
	parts := strings.Split(i.Date, "-")
	if len(parts) != 3 {
		return time.Time{}
	}
	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	year, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil {
		return time.Time{}
	}
	return time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
