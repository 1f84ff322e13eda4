package invoice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	normalizeYearPattern = regexp.MustCompile(`(?:20)?(\d{2})$`)
	trailingYearPattern  = regexp.MustCompile(`(\d{2})$`)
	quarterPattern       = regexp.MustCompile(`([1-4])(?:st|nd|rd|th)_Q`)
	fourDigitYearPattern = regexp.MustCompile(`\d{4}`)
)

var ordinalSuffix = map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th"}

// NormalizePeriod turns free-form billing period text ("1st quarter 2024",
// "2nd half '25") into a canonical label ("1st_Q_24", "2nd_H_25").
// Text it cannot classify comes back trimmed with whitespace runs replaced
// by underscores. Never fails.
func NormalizePeriod(input string) string {
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "" {
		return ""
	}

	loc := normalizeYearPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return underscoreFallback(input)
	}
	year := text[loc[2]:loc[3]]

	core := strings.TrimSpace(text[:loc[0]])
	core = strings.NewReplacer("'", "", ".", "").Replace(core)

	// Quarter must be tried before half: "h" also appears in "fourth", "third".
	if strings.Contains(core, "q") || strings.Contains(core, "quarter") {
		switch {
		case containsAny(core, "1", "first"):
			return "1st_Q_" + year
		case containsAny(core, "2", "sec"):
			return "2nd_Q_" + year
		case containsAny(core, "3", "third"):
			return "3rd_Q_" + year
		case containsAny(core, "4", "fourth"):
			return "4th_Q_" + year
		}
	}

	if strings.Contains(core, "h") || strings.Contains(core, "half") {
		switch {
		case containsAny(core, "1", "first"):
			return "1st_H_" + year
		case containsAny(core, "2", "sec"):
			return "2nd_H_" + year
		}
	}

	return underscoreFallback(input)
}

func underscoreFallback(input string) string {
	return strings.Join(strings.Fields(input), "_")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// periodLabel is a period string plus the year facts every rule looks at.
type periodLabel struct {
	raw       string
	year      int
	hasYear   bool   // trailing 2-digit year present
	nextYear  string // year+1 when hasYear, else current year
	currentYY string
}

// periodRule is one guarded step of the advancer. ok=false passes the
// label on to the next rule.
type periodRule struct {
	name  string
	apply func(p periodLabel) (next string, ok bool)
}

// advanceRules are evaluated in order; the first rule that applies wins.
// Several patterns overlap textually, so the order is part of the contract.
var advanceRules = []periodRule{
	{
		name: "first-and-second-quarter",
		apply: func(p periodLabel) (string, bool) {
			if !strings.Contains(p.raw, "1st_and_2nd_Q") || !p.hasYear {
				return "", false
			}
			return "3rd_and_4th_Q_" + twoDigits(p.year), true
		},
	},
	{
		name: "third-and-fourth-quarter",
		apply: func(p periodLabel) (string, bool) {
			if !strings.Contains(p.raw, "3rd_and_4th_Q") {
				return "", false
			}
			return "1st_and_2nd_Q_" + p.nextYear, true
		},
	},
	{
		name: "first-half",
		apply: func(p periodLabel) (string, bool) {
			if !strings.Contains(p.raw, "1st_H") || !p.hasYear {
				return "", false
			}
			return "2nd_H_" + twoDigits(p.year), true
		},
	},
	{
		name: "second-half",
		apply: func(p periodLabel) (string, bool) {
			if !strings.Contains(p.raw, "2nd_H") {
				return "", false
			}
			return "1st_H_" + p.nextYear, true
		},
	},
	{
		name: "ordinal-quarter",
		apply: func(p periodLabel) (string, bool) {
			m := quarterPattern.FindStringSubmatch(p.raw)
			if m == nil || !p.hasYear {
				return "", false
			}
			q, _ := strconv.Atoi(m[1])
			if q == 4 {
				return "1st_Q_" + p.nextYear, true
			}
			next := q + 1
			return fmt.Sprintf("%d%s_Q_%s", next, ordinalSuffix[next], twoDigits(p.year)), true
		},
	},
	{
		name: "embedded-four-digit-year",
		apply: func(p periodLabel) (string, bool) {
			loc := fourDigitYearPattern.FindStringIndex(p.raw)
			if loc == nil {
				return "", false
			}
			match := p.raw[loc[0]:loc[1]]
			value, _ := strconv.Atoi(match)
			bumped := fmt.Sprintf("%0*d", len(match), value+1)
			return p.raw[:loc[0]] + bumped + p.raw[loc[1]:], true
		},
	},
	{
		name: "no-year",
		apply: func(p periodLabel) (string, bool) {
			if p.hasYear {
				return "", false
			}
			return p.raw + "_" + p.currentYY, true
		},
	},
	{
		name: "unresolved",
		apply: func(p periodLabel) (string, bool) {
			return "NEXT_FOR_" + p.raw, true
		},
	},
}

// AdvancePeriod computes the period label that follows last. now supplies
// the current year for labels that carry none and for year rollovers
// without an explicit year. Never fails: unrecognised year-bearing labels
// come back as "NEXT_FOR_<last>".
func AdvancePeriod(last string, now time.Time) string {
	next, _ := ExplainAdvance(last, now)
	return next
}

// ExplainAdvance is AdvancePeriod that also reports which rule fired.
func ExplainAdvance(last string, now time.Time) (next, rule string) {
	p := newPeriodLabel(last, now)
	for _, r := range advanceRules {
		if out, ok := r.apply(p); ok {
			return out, r.name
		}
	}
	return "NEXT_FOR_" + last, "unresolved"
}

func newPeriodLabel(raw string, now time.Time) periodLabel {
	p := periodLabel{
		raw:       raw,
		currentYY: YearSuffix(now),
	}
	if m := trailingYearPattern.FindStringSubmatch(raw); m != nil {
		p.year, _ = strconv.Atoi(m[1])
		p.hasYear = true
		p.nextYear = twoDigits(p.year + 1)
	} else {
		p.nextYear = p.currentYY
	}
	return p
}

// YearSuffix returns the 2-digit year of t.
func YearSuffix(t time.Time) string {
	return twoDigits(t.Year() % 100)
}

func twoDigits(n int) string {
	return fmt.Sprintf("%02d", n)
}
