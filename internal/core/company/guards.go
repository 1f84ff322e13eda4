package company

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // populated when not allowed
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// AddContext carries what CanAddCompany needs to decide.
type AddContext struct {
	Acronym  string
	Name     string
	Existing Registry
}

// AdHocContext carries what CanAddAdHoc needs to decide.
type AdHocContext struct {
	Acronym  string
	Period   string
	Existing Registry
}

// CanAddCompany evaluates whether a company can be registered.
// Rules: acronym is 3 uppercase letters, not taken, and the name is non-empty.
func CanAddCompany(ctx AddContext) GuardResult {
	if !ValidAcronym(ctx.Acronym) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid acronym %q: must be exactly 3 uppercase letters", ctx.Acronym),
		}
	}
	if existing, ok := ctx.Existing.Lookup(ctx.Acronym); ok {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("acronym %s already registered to %s", ctx.Acronym, existing.Name),
		}
	}
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "company name cannot be empty",
		}
	}
	return GuardResult{Allowed: true}
}

// CanAddAdHoc evaluates whether an ad-hoc invoice can be drafted.
// Registered companies must go through the regular next-invoice flow.
func CanAddAdHoc(ctx AdHocContext) GuardResult {
	if !ValidAcronym(ctx.Acronym) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid acronym %q: must be exactly 3 uppercase letters", ctx.Acronym),
		}
	}
	if existing, ok := ctx.Existing.Lookup(ctx.Acronym); ok {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("acronym %s belongs to %s - use 'invoicer next %s' instead", ctx.Acronym, existing.Name, ctx.Acronym),
		}
	}
	if strings.TrimSpace(ctx.Period) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "billing period cannot be empty",
		}
	}
	return GuardResult{Allowed: true}
}
