package invoice

import (
	"sort"
	"time"

	"github.com/example/invoicer/internal/core/company"
)

// newer reports whether a should be listed before b: later issue date
// first, higher sequence number first on the same date.
func newer(a, b Invoice) bool {
	da, db := a.IssuedOn(), b.IssuedOn()
	if da.Equal(db) {
		return a.Number > b.Number
	}
	return da.After(db)
}

// LatestFor returns the most recent invoice issued to acronym.
func LatestFor(acronym string, parsed []Invoice) (Invoice, bool) {
	var (
		latest Invoice
		found  bool
	)
	for _, inv := range parsed {
		if inv.Acronym != acronym {
			continue
		}
		if !found || newer(inv, latest) {
			latest = inv
			found = true
		}
	}
	return latest, found
}

// NextNumber returns max(Number)+1 over every invoice regardless of
// company, or 1 for an empty history. The counter is shared and never
// reuses a number.
func NextNumber(parsed []Invoice) int {
	highest := 0
	for _, inv := range parsed {
		if inv.Number > highest {
			highest = inv.Number
		}
	}
	return highest + 1
}

// FormatDate renders t as DD-MM-YY.
func FormatDate(t time.Time) string {
	return t.Format("02-01-06")
}

// GenerateNext derives the next invoice for c from the history. The
// history slice is not modified.
func GenerateNext(c company.Company, history []string, now time.Time) Invoice {
	// Registry contents don't matter here: only acronym, number, date and
	// period of the parsed entries are read.
	parsed := ParseAll(history, nil)

	period := "1st_H_" + YearSuffix(now)
	if last, ok := LatestFor(c.Acronym, parsed); ok {
		period = AdvancePeriod(last.Period, now)
	}

	return assemble(c.Acronym, c.Name, NextNumber(parsed), now, period)
}

// GenerateAdHoc drafts an invoice for a company outside the registry.
// period must already be normalized.
func GenerateAdHoc(acronym, period string, history []string, now time.Time) Invoice {
	parsed := ParseAll(history, nil)
	return assemble(acronym, company.AdHocName(acronym), NextNumber(parsed), now, period)
}

func assemble(acronym, name string, number int, now time.Time, period string) Invoice {
	date := FormatDate(now)
	return Invoice{
		FullString:  Format(acronym, number, date, period),
		Acronym:     acronym,
		Number:      number,
		Date:        date,
		Period:      period,
		CompanyName: name,
	}
}

// SortHistory returns history in display order: newest first by issue
// date then sequence number. Entries that don't parse go last and keep
// their relative order.
func SortHistory(history []string) []string {
	type entry struct {
		raw    string
		inv    Invoice
		parsed bool
	}

	entries := make([]entry, len(history))
	for i, raw := range history {
		inv, ok := Parse(raw, nil)
		entries[i] = entry{raw: raw, inv: inv, parsed: ok}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		if !a.parsed {
			return false
		}
		return newer(a.inv, b.inv)
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.raw
	}
	return out
}
