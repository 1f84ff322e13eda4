package invoice

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// SaveContext provides context for saving a new identifier to history.
type SaveContext struct {
	Name   string
	Exists bool // Name is already in history
}

// EditContext provides context for replacing one identifier with another.
type EditContext struct {
	Current       string
	New           string
	CurrentExists bool
	NewExists     bool
}

// DeleteContext provides context for removing an identifier.
type DeleteContext struct {
	Name      string
	Exists    bool
	Confirmed bool
}

// ImportContext provides context for replacing the whole history.
type ImportContext struct {
	LineCount int
	Confirmed bool
}

// CanSave evaluates whether an identifier can be added to history.
// Rules: it must parse and must not be present already.
func CanSave(ctx SaveContext) GuardResult {
	inv, ok := Parse(ctx.Name, nil)
	if !ok {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%q is not a valid invoice identifier", ctx.Name),
		}
	}
	if ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invoice %s already exists", inv.FullString),
		}
	}
	return GuardResult{Allowed: true}
}

// CanIssueNumber evaluates whether a generated sequence number still fits
// the 3-digit field. Past 999 the identifier would no longer parse.
func CanIssueNumber(number int) GuardResult {
	if number > MaxNumber {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("sequence number %d exceeds %d: the identifier format has run out of numbers", number, MaxNumber),
		}
	}
	return GuardResult{Allowed: true}
}

// CanEdit evaluates whether current can be replaced by new. The new name
// does not have to parse: history tolerates free-form entries.
func CanEdit(ctx EditContext) GuardResult {
	newName := strings.TrimSpace(ctx.New)
	if newName == "" {
		return GuardResult{Allowed: false, Reason: "new invoice name cannot be empty"}
	}
	if newName == strings.TrimSpace(ctx.Current) {
		return GuardResult{Allowed: false, Reason: "new invoice name is unchanged"}
	}
	if !ctx.CurrentExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invoice %s not found", strings.TrimSpace(ctx.Current)),
		}
	}
	if ctx.NewExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invoice %s already exists", newName),
		}
	}
	return GuardResult{Allowed: true}
}

// CanDelete evaluates whether an identifier can be removed.
// Deletion is irreversible, so it needs explicit confirmation.
func CanDelete(ctx DeleteContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invoice %s not found", strings.TrimSpace(ctx.Name)),
		}
	}
	if !ctx.Confirmed {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("deleting %s cannot be undone. Use --force to confirm", strings.TrimSpace(ctx.Name)),
		}
	}
	return GuardResult{Allowed: true}
}

// CanImport evaluates whether an import may replace the whole history.
func CanImport(ctx ImportContext) GuardResult {
	if ctx.LineCount == 0 {
		return GuardResult{Allowed: false, Reason: ErrNoInvoicesFound.Error()}
	}
	if !ctx.Confirmed {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("import will replace the current history with %d invoice(s). Use --force to confirm", ctx.LineCount),
		}
	}
	return GuardResult{Allowed: true}
}
