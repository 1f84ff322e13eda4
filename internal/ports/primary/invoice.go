// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the CLI uses to drive the application services.
package primary

import "context"

// InvoiceService defines the primary port for invoice naming and history operations.
type InvoiceService interface {
	// PreviewNext drafts the next invoice for a registered company without saving it.
	PreviewNext(ctx context.Context, acronym string) (*Invoice, error)

	// PreviewAdHoc drafts an invoice for a company outside the registry.
	// The period is normalized before use.
	PreviewAdHoc(ctx context.Context, req AdHocRequest) (*Invoice, error)

	// SaveInvoice adds an identifier to the history.
	SaveInvoice(ctx context.Context, name string) (*Invoice, error)

	// ListInvoices returns the history in display order.
	ListInvoices(ctx context.Context, filters InvoiceFilters) ([]*InvoiceEntry, error)

	// GetInvoice parses a single history entry.
	GetInvoice(ctx context.Context, name string) (*Invoice, error)

	// EditInvoice replaces one history entry with another string.
	EditInvoice(ctx context.Context, req EditInvoiceRequest) error

	// DeleteInvoice removes an entry from the history.
	DeleteInvoice(ctx context.Context, req DeleteInvoiceRequest) error

	// ImportInvoices replaces the whole history with the contents of a backup file.
	ImportInvoices(ctx context.Context, req ImportInvoicesRequest) (*ImportInvoicesResponse, error)

	// ExportInvoices writes the history to a backup file.
	ExportInvoices(ctx context.Context, req ExportInvoicesRequest) (*ExportInvoicesResponse, error)

	// NormalizePeriod canonicalizes free-form period text.
	NormalizePeriod(text string) string

	// AdvancePeriod returns the period that follows label and the rule that produced it.
	AdvancePeriod(label string) (next string, rule string)
}

// Invoice represents a parsed or drafted invoice identifier at the port boundary.
type Invoice struct {
	FullString  string
	Acronym     string
	Number      int
	Date        string
	Period      string
	CompanyName string
	AdHoc       bool // acronym is not in the company registry
}

// InvoiceEntry is one history line. Invoice is nil when the line does not parse.
type InvoiceEntry struct {
	Name    string
	Invoice *Invoice
}

// InvoiceFilters contains filter options for listing the history.
type InvoiceFilters struct {
	Acronym string
	Limit   int
}

// AdHocRequest contains parameters for drafting an ad-hoc invoice.
type AdHocRequest struct {
	Acronym string
	Period  string // free-form; normalized by the service
}

// EditInvoiceRequest contains parameters for replacing a history entry.
type EditInvoiceRequest struct {
	Current string
	New     string
}

// DeleteInvoiceRequest contains parameters for deleting a history entry.
type DeleteInvoiceRequest struct {
	Name  string
	Force bool
}

// ImportInvoicesRequest contains parameters for importing a backup file.
type ImportInvoicesRequest struct {
	Path  string
	Force bool
}

// ImportInvoicesResponse contains the result of an import.
type ImportInvoicesResponse struct {
	Imported int
	Replaced int
}

// ExportInvoicesRequest contains parameters for exporting the history.
// An empty Path writes the default backup file name into the backup directory.
type ExportInvoicesRequest struct {
	Path string
}

// ExportInvoicesResponse contains the result of an export.
type ExportInvoicesResponse struct {
	Path     string
	Exported int
}
