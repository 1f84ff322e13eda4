// Package company contains the pure company registry and its guards.
// This is part of the Functional Core - no I/O, only pure functions.
package company

import (
	"fmt"
	"sort"
)

// Company pairs a 3-letter acronym with its display name.
type Company struct {
	Acronym string
	Name    string
}

// Registry is a lookup table of known companies keyed by acronym.
// The zero value (and a nil Registry) is valid and knows no companies.
type Registry map[string]Company

// NewRegistry builds a registry from the given companies.
// Later entries win when acronyms collide.
func NewRegistry(companies ...Company) Registry {
	reg := make(Registry, len(companies))
	for _, c := range companies {
		reg[c.Acronym] = c
	}
	return reg
}

// Defaults returns the built-in registry.
func Defaults() Registry {
	return NewRegistry(
		Company{Acronym: "CHN", Name: "Chin-Chin Records"},
		Company{Acronym: "AGO", Name: "Agogo Records"},
		Company{Acronym: "FRS", Name: "Freshly Squeezed"},
		Company{Acronym: "NVI", Name: "Nuovo IMAIE"},
		Company{Acronym: "SSM", Name: "Tape Five"},
	)
}

// Lookup returns the registered company for an acronym.
func (r Registry) Lookup(acronym string) (Company, bool) {
	c, ok := r[acronym]
	return c, ok
}

// DisplayName always returns something printable: the registered name,
// or the ad-hoc label for acronyms the registry does not know.
func (r Registry) DisplayName(acronym string) string {
	if c, ok := r[acronym]; ok {
		return c.Name
	}
	return AdHocName(acronym)
}

// Companies returns the registered companies sorted by acronym.
func (r Registry) Companies() []Company {
	out := make([]Company, 0, len(r))
	for _, c := range r {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Acronym < out[j].Acronym })
	return out
}

// Acronyms returns the registered acronyms, sorted.
func (r Registry) Acronyms() []string {
	out := make([]string, 0, len(r))
	for _, c := range r.Companies() {
		out = append(out, c.Acronym)
	}
	return out
}

// AdHocName is the label used for companies outside the registry.
func AdHocName(acronym string) string {
	return fmt.Sprintf("Società Ad-Hoc (%s)", acronym)
}

// ValidAcronym reports whether s is exactly three ASCII uppercase letters.
func ValidAcronym(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
