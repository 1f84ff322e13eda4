// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/invoicer/internal/ports/primary"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

// InvoiceAdapter is a thin adapter that translates CLI operations to InvoiceService calls.
// It depends only on the InvoiceService interface, enabling easy testing with mocks.
type InvoiceAdapter struct {
	service primary.InvoiceService
	out     io.Writer
}

// NewInvoiceAdapter creates a new InvoiceAdapter with the given service.
func NewInvoiceAdapter(service primary.InvoiceService, out io.Writer) *InvoiceAdapter {
	return &InvoiceAdapter{
		service: service,
		out:     out,
	}
}

// Next drafts the next invoice for a registered company, saving it when save is set.
func (a *InvoiceAdapter) Next(ctx context.Context, acronym string, save bool) error {
	inv, err := a.service.PreviewNext(ctx, acronym)
	if err != nil {
		return err
	}
	return a.present(ctx, inv, save)
}

// AdHoc drafts an invoice for a company outside the registry.
func (a *InvoiceAdapter) AdHoc(ctx context.Context, acronym, period string, save bool) error {
	inv, err := a.service.PreviewAdHoc(ctx, primary.AdHocRequest{
		Acronym: acronym,
		Period:  period,
	})
	if err != nil {
		return err
	}
	if inv.Period != period {
		fmt.Fprintf(a.out, "Period %q normalized to %s\n", period, inv.Period)
	}
	return a.present(ctx, inv, save)
}

// Save records an identifier typed in by hand.
func (a *InvoiceAdapter) Save(ctx context.Context, name string) error {
	inv, err := a.service.SaveInvoice(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Saved %s\n", okMark, inv.FullString)
	return nil
}

// List prints the history newest first.
func (a *InvoiceAdapter) List(ctx context.Context, acronym string, limit int) error {
	entries, err := a.service.ListInvoices(ctx, primary.InvoiceFilters{
		Acronym: acronym,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No invoices found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-5s %-10s %-28s %-20s %s\n", "NUM", "DATE", "COMPANY", "PERIOD", "IDENTIFIER")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────")
	for _, e := range entries {
		if e.Invoice == nil {
			fmt.Fprintf(a.out, "%-5s %-10s %-28s %-20s %s\n", "-", "-", "-", "-", color.New(color.FgYellow).Sprint(e.Name))
			continue
		}
		inv := e.Invoice
		fmt.Fprintf(a.out, "%03d   %-10s %-28s %-20s %s\n", inv.Number, inv.Date, inv.CompanyName, inv.Period, inv.FullString)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show prints the fields of one identifier.
func (a *InvoiceAdapter) Show(ctx context.Context, name string) error {
	inv, err := a.service.GetInvoice(ctx, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nInvoice: %s\n", inv.FullString)
	fmt.Fprintf(a.out, "Company: %s (%s)\n", inv.CompanyName, inv.Acronym)
	fmt.Fprintf(a.out, "Number:  %03d\n", inv.Number)
	fmt.Fprintf(a.out, "Date:    %s\n", inv.Date)
	fmt.Fprintf(a.out, "Period:  %s\n", inv.Period)
	if inv.AdHoc {
		fmt.Fprintf(a.out, "%s Company is not in the registry\n", warnMark)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Edit replaces a history entry.
func (a *InvoiceAdapter) Edit(ctx context.Context, current, replacement string) error {
	err := a.service.EditInvoice(ctx, primary.EditInvoiceRequest{
		Current: current,
		New:     replacement,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Renamed %s\n  -> %s\n", okMark, current, replacement)
	return nil
}

// Delete removes a history entry.
func (a *InvoiceAdapter) Delete(ctx context.Context, name string, force bool) error {
	err := a.service.DeleteInvoice(ctx, primary.DeleteInvoiceRequest{
		Name:  name,
		Force: force,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Deleted %s\n", okMark, name)
	return nil
}

// Export writes a backup file.
func (a *InvoiceAdapter) Export(ctx context.Context, path string) error {
	resp, err := a.service.ExportInvoices(ctx, primary.ExportInvoicesRequest{Path: path})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Exported %d invoice(s) to %s\n", okMark, resp.Exported, resp.Path)
	return nil
}

// Import replaces the history with a backup file.
func (a *InvoiceAdapter) Import(ctx context.Context, path string, force bool) error {
	resp, err := a.service.ImportInvoices(ctx, primary.ImportInvoicesRequest{
		Path:  path,
		Force: force,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Imported %d invoice(s), replacing %d\n", okMark, resp.Imported, resp.Replaced)
	return nil
}

// Normalize prints the canonical label for free-form period text.
func (a *InvoiceAdapter) Normalize(text string) {
	fmt.Fprintln(a.out, a.service.NormalizePeriod(text))
}

// NextPeriod prints the label that follows the given one and the rule used.
func (a *InvoiceAdapter) NextPeriod(label string, explain bool) {
	next, rule := a.service.AdvancePeriod(label)
	if explain {
		fmt.Fprintf(a.out, "%s (rule: %s)\n", next, rule)
		return
	}
	fmt.Fprintln(a.out, next)
}

func (a *InvoiceAdapter) present(ctx context.Context, inv *primary.Invoice, save bool) error {
	fmt.Fprintf(a.out, "Next invoice for %s (%s):\n", inv.CompanyName, inv.Acronym)
	fmt.Fprintf(a.out, "  %s\n", color.New(color.Bold).Sprint(inv.FullString))

	if !save {
		fmt.Fprintln(a.out, "\nRe-run with --save to record it in the history.")
		return nil
	}

	if _, err := a.service.SaveInvoice(ctx, inv.FullString); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Saved to history\n", okMark)
	return nil
}
