package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/invoicer/internal/core/company"
	coreinvoice "github.com/example/invoicer/internal/core/invoice"
	"github.com/example/invoicer/internal/logger"
	"github.com/example/invoicer/internal/ports/primary"
	"github.com/example/invoicer/internal/ports/secondary"
)

// InvoiceServiceImpl implements the InvoiceService interface.
// Every mutation reads the whole history, computes the new list in the
// core, and writes the whole list back.
type InvoiceServiceImpl struct {
	historyRepo secondary.HistoryRepository
	companyRepo secondary.CompanyRepository
	files       secondary.FileStore
	logWriter   secondary.LogWriter
	now         func() time.Time
	log         zerolog.Logger
}

// NewInvoiceService creates a new InvoiceService with injected dependencies.
func NewInvoiceService(
	historyRepo secondary.HistoryRepository,
	companyRepo secondary.CompanyRepository,
	files secondary.FileStore,
	logWriter secondary.LogWriter,
) *InvoiceServiceImpl {
	return &InvoiceServiceImpl{
		historyRepo: historyRepo,
		companyRepo: companyRepo,
		files:       files,
		logWriter:   logWriter,
		now:         time.Now,
		log:         logger.WithComponent("invoice"),
	}
}

// WithClock replaces the clock used for dates and period years.
func (s *InvoiceServiceImpl) WithClock(now func() time.Time) *InvoiceServiceImpl {
	s.now = now
	return s
}

// PreviewNext drafts the next invoice for a registered company.
func (s *InvoiceServiceImpl) PreviewNext(ctx context.Context, acronym string) (*primary.Invoice, error) {
	acronym = normalizeAcronym(acronym)

	// 1. Resolve company
	reg, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := reg.Lookup(acronym)
	if !ok {
		return nil, fmt.Errorf("company %s is not registered (known: %s) - use 'invoicer adhoc %s <period>' or 'invoicer company add'",
			acronym, strings.Join(reg.Acronyms(), ", "), acronym)
	}

	// 2. Load history
	history, err := s.historyRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	// 3. Generate
	inv := coreinvoice.GenerateNext(c, history, s.now())
	if err := coreinvoice.CanIssueNumber(inv.Number).Error(); err != nil {
		return nil, err
	}

	s.log.Debug().Str("acronym", acronym).Str("period", inv.Period).Int("number", inv.Number).Msg("drafted next invoice")
	return toPortInvoice(inv, false), nil
}

// PreviewAdHoc drafts an invoice for a company outside the registry.
func (s *InvoiceServiceImpl) PreviewAdHoc(ctx context.Context, req primary.AdHocRequest) (*primary.Invoice, error) {
	acronym := normalizeAcronym(req.Acronym)
	period := coreinvoice.NormalizePeriod(req.Period)

	// 1. Guard
	reg, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}
	guard := company.CanAddAdHoc(company.AdHocContext{
		Acronym:  acronym,
		Period:   period,
		Existing: reg,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	// 2. Load history
	history, err := s.historyRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	// 3. Generate
	inv := coreinvoice.GenerateAdHoc(acronym, period, history, s.now())
	if err := coreinvoice.CanIssueNumber(inv.Number).Error(); err != nil {
		return nil, err
	}

	s.log.Debug().Str("acronym", acronym).Str("raw_period", req.Period).Str("period", period).Msg("drafted ad-hoc invoice")
	return toPortInvoice(inv, true), nil
}

// SaveInvoice adds an identifier to the history.
func (s *InvoiceServiceImpl) SaveInvoice(ctx context.Context, name string) (*primary.Invoice, error) {
	name = strings.TrimSpace(name)

	history, err := s.historyRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	guard := coreinvoice.CanSave(coreinvoice.SaveContext{
		Name:   name,
		Exists: indexOf(history, name) >= 0,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	updated := coreinvoice.SortHistory(append([]string{name}, history...))
	if err := s.historyRepo.Replace(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	s.audit(s.logWriter.LogCreate(ctx, secondary.EntityInvoice, name))

	reg, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}
	inv, _ := coreinvoice.Parse(name, reg)
	_, known := reg.Lookup(inv.Acronym)
	return toPortInvoice(inv, !known), nil
}

// ListInvoices returns the history in display order.
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context, filters primary.InvoiceFilters) ([]*primary.InvoiceEntry, error) {
	history, err := s.historyRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	reg, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}

	acronym := normalizeAcronym(filters.Acronym)
	entries := []*primary.InvoiceEntry{}
	for _, name := range coreinvoice.SortHistory(history) {
		entry := &primary.InvoiceEntry{Name: name}
		if inv, ok := coreinvoice.Parse(name, reg); ok {
			_, known := reg.Lookup(inv.Acronym)
			entry.Invoice = toPortInvoice(inv, !known)
		}

		if acronym != "" && (entry.Invoice == nil || entry.Invoice.Acronym != acronym) {
			continue
		}
		entries = append(entries, entry)

		if filters.Limit > 0 && len(entries) == filters.Limit {
			break
		}
	}
	return entries, nil
}

// GetInvoice parses a single identifier against the current registry.
func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, name string) (*primary.Invoice, error) {
	reg, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}
	inv, ok := coreinvoice.Parse(name, reg)
	if !ok {
		return nil, fmt.Errorf("%q is not a valid invoice identifier", strings.TrimSpace(name))
	}
	_, known := reg.Lookup(inv.Acronym)
	return toPortInvoice(inv, !known), nil
}

// EditInvoice replaces every entry equal to req.Current with req.New.
func (s *InvoiceServiceImpl) EditInvoice(ctx context.Context, req primary.EditInvoiceRequest) error {
	current := strings.TrimSpace(req.Current)
	replacement := strings.TrimSpace(req.New)

	history, err := s.historyRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	exists := indexOf(history, current) >= 0
	guard := coreinvoice.CanEdit(coreinvoice.EditContext{
		Current:       current,
		New:           replacement,
		CurrentExists: exists,
		NewExists:     indexOf(history, replacement) >= 0,
	})
	if err := guard.Error(); err != nil {
		if !exists && replacement != "" && replacement != current {
			return fmt.Errorf("%w: %s", coreinvoice.ErrNotFound, current)
		}
		return err
	}

	if _, ok := coreinvoice.Parse(replacement, nil); !ok {
		s.log.Warn().Str("name", replacement).Msg("new name is not a valid identifier; it will be ignored when generating")
	}

	updated := make([]string, len(history))
	for i, entry := range history {
		if strings.TrimSpace(entry) == current {
			entry = replacement
		}
		updated[i] = entry
	}

	if err := s.historyRepo.Replace(ctx, coreinvoice.SortHistory(updated)); err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	s.audit(s.logWriter.LogUpdate(ctx, secondary.EntityInvoice, replacement, "name", current, replacement))
	return nil
}

// DeleteInvoice removes every entry equal to req.Name.
func (s *InvoiceServiceImpl) DeleteInvoice(ctx context.Context, req primary.DeleteInvoiceRequest) error {
	name := strings.TrimSpace(req.Name)

	history, err := s.historyRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	exists := indexOf(history, name) >= 0
	guard := coreinvoice.CanDelete(coreinvoice.DeleteContext{
		Name:      name,
		Exists:    exists,
		Confirmed: req.Force,
	})
	if err := guard.Error(); err != nil {
		if !exists {
			return fmt.Errorf("%w: %s", coreinvoice.ErrNotFound, name)
		}
		return err
	}

	updated := make([]string, 0, len(history))
	for _, entry := range history {
		if strings.TrimSpace(entry) != name {
			updated = append(updated, entry)
		}
	}

	if err := s.historyRepo.Replace(ctx, updated); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	s.audit(s.logWriter.LogDelete(ctx, secondary.EntityInvoice, name))
	return nil
}

// ImportInvoices replaces the history with the identifier lines of a backup file.
func (s *InvoiceServiceImpl) ImportInvoices(ctx context.Context, req primary.ImportInvoicesRequest) (*primary.ImportInvoicesResponse, error) {
	// 1. Read and extract
	data, err := s.files.ReadFile(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	lines, err := coreinvoice.ExtractImportLines(string(data))
	if err != nil {
		return nil, err
	}

	// 2. Guard
	guard := coreinvoice.CanImport(coreinvoice.ImportContext{
		LineCount: len(lines),
		Confirmed: req.Force,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	// 3. Replace wholesale
	previous, err := s.historyRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if err := s.historyRepo.Replace(ctx, coreinvoice.SortHistory(lines)); err != nil {
		return nil, fmt.Errorf("failed to import invoices: %w", err)
	}
	s.audit(s.logWriter.LogUpdate(ctx, secondary.EntityHistory, req.Path, "count",
		strconv.Itoa(len(previous)), strconv.Itoa(len(lines))))

	s.log.Info().Str("path", req.Path).Int("imported", len(lines)).Int("replaced", len(previous)).Msg("history imported")
	return &primary.ImportInvoicesResponse{
		Imported: len(lines),
		Replaced: len(previous),
	}, nil
}

// ExportInvoices writes the history to a backup file.
func (s *InvoiceServiceImpl) ExportInvoices(ctx context.Context, req primary.ExportInvoicesRequest) (*primary.ExportInvoicesResponse, error) {
	history, err := s.historyRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if len(history) == 0 {
		s.log.Warn().Msg("exporting an empty history; the file cannot be imported back")
	}

	path := req.Path
	if path == "" {
		path = coreinvoice.BackupFileName(s.now())
	}

	written, err := s.files.WriteFile(ctx, path, []byte(coreinvoice.RenderBackup(history)))
	if err != nil {
		return nil, fmt.Errorf("failed to export invoices: %w", err)
	}

	return &primary.ExportInvoicesResponse{
		Path:     written,
		Exported: len(history),
	}, nil
}

// NormalizePeriod canonicalizes free-form period text.
func (s *InvoiceServiceImpl) NormalizePeriod(text string) string {
	return coreinvoice.NormalizePeriod(text)
}

// AdvancePeriod returns the period following label and the rule that fired.
func (s *InvoiceServiceImpl) AdvancePeriod(label string) (string, string) {
	return coreinvoice.ExplainAdvance(label, s.now())
}

// Helper methods

func (s *InvoiceServiceImpl) registry(ctx context.Context) (company.Registry, error) {
	records, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}
	companies := make([]company.Company, len(records))
	for i, r := range records {
		companies[i] = company.Company{Acronym: r.Acronym, Name: r.Name}
	}
	return company.NewRegistry(companies...), nil
}

// audit reports audit-trail failures without failing the operation that
// already succeeded.
func (s *InvoiceServiceImpl) audit(err error) {
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to write activity log")
	}
}

func toPortInvoice(inv coreinvoice.Invoice, adHoc bool) *primary.Invoice {
	return &primary.Invoice{
		FullString:  inv.FullString,
		Acronym:     inv.Acronym,
		Number:      inv.Number,
		Date:        inv.Date,
		Period:      inv.Period,
		CompanyName: inv.CompanyName,
		AdHoc:       adHoc,
	}
}

// indexOf finds name in history comparing trimmed values, or returns -1.
func indexOf(history []string, name string) int {
	for i, entry := range history {
		if strings.TrimSpace(entry) == name {
			return i
		}
	}
	return -1
}

func normalizeAcronym(acronym string) string {
	return strings.ToUpper(strings.TrimSpace(acronym))
}

// Ensure InvoiceServiceImpl implements the interface
var _ primary.InvoiceService = (*InvoiceServiceImpl)(nil)
