package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/invoicer/internal/ports/primary"
)

// CompanyAdapter translates CLI operations to CompanyService calls.
type CompanyAdapter struct {
	service primary.CompanyService
	out     io.Writer
}

// NewCompanyAdapter creates a new CompanyAdapter with the given service.
func NewCompanyAdapter(service primary.CompanyService, out io.Writer) *CompanyAdapter {
	return &CompanyAdapter{
		service: service,
		out:     out,
	}
}

// List prints the registry.
func (a *CompanyAdapter) List(ctx context.Context) error {
	companies, err := a.service.ListCompanies(ctx)
	if err != nil {
		return err
	}

	if len(companies) == 0 {
		fmt.Fprintln(a.out, "No companies registered")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-8s %s\n", "ACRONYM", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────")
	for _, c := range companies {
		fmt.Fprintf(a.out, "%-8s %s\n", color.New(color.FgCyan).Sprint(c.Acronym), c.Name)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show prints one registered company.
func (a *CompanyAdapter) Show(ctx context.Context, acronym string) error {
	c, err := a.service.GetCompany(ctx, acronym)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nCompany: %s\n", c.Acronym)
	fmt.Fprintf(a.out, "Name:    %s\n", c.Name)
	fmt.Fprintf(a.out, "Added:   %s\n", c.CreatedAt)
	fmt.Fprintln(a.out)
	return nil
}

// Add registers a company.
func (a *CompanyAdapter) Add(ctx context.Context, acronym, name string) error {
	c, err := a.service.AddCompany(ctx, primary.AddCompanyRequest{
		Acronym: acronym,
		Name:    name,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Registered %s: %s\n", okMark, c.Acronym, c.Name)
	return nil
}

// Import registers the companies listed in a YAML file.
func (a *CompanyAdapter) Import(ctx context.Context, path string) error {
	resp, err := a.service.ImportCompanies(ctx, path)
	if resp != nil && len(resp.Added) > 0 {
		fmt.Fprintf(a.out, "%s Registered %s\n", okMark, strings.Join(resp.Added, ", "))
	}
	if err != nil {
		return err
	}
	if len(resp.Skipped) > 0 {
		fmt.Fprintf(a.out, "%s Already registered: %s\n", warnMark, strings.Join(resp.Skipped, ", "))
	}
	return nil
}

// Export writes the registry to a YAML file.
func (a *CompanyAdapter) Export(ctx context.Context, path string) error {
	n, err := a.service.ExportCompanies(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Exported %d compan(ies) to %s\n", okMark, n, path)
	return nil
}
