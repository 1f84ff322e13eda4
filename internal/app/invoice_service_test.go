package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	coreinvoice "github.com/example/invoicer/internal/core/invoice"
	"github.com/example/invoicer/internal/ports/primary"
)

func newTestInvoiceService(history ...string) (*InvoiceServiceImpl, *mockHistoryRepository, *mockFileStore, *mockLogWriter) {
	historyRepo := newMockHistoryRepository(history...)
	files := newMockFileStore()
	logWriter := &mockLogWriter{}
	service := NewInvoiceService(historyRepo, newSeededCompanyRepository(), files, logWriter).WithClock(fixedClock)
	return service, historyRepo, files, logWriter
}

func TestInvoiceService_PreviewNext(t *testing.T) {
	tests := []struct {
		acronym     string
		wantName    string
		wantCompany string
	}{
		{"CHN", "INVOICE_FAB_SAMPERI_CHN018_19-10-26_(3rd_Q_25)", "Chin-Chin Records"},
		{"AGO", "INVOICE_FAB_SAMPERI_AGO018_19-10-26_(3rd_and_4th_Q_25)", "Agogo Records"},
		{"FRS", "INVOICE_FAB_SAMPERI_FRS018_19-10-26_(2nd_H_25)", "Freshly Squeezed"},
		{"NVI", "INVOICE_FAB_SAMPERI_NVI018_19-10-26_(Nuovo_IMAIE_26)", "Nuovo IMAIE"},
		{"ssm", "INVOICE_FAB_SAMPERI_SSM018_19-10-26_(til_May_2025)", "Tape Five"},
	}

	for _, tt := range tests {
		t.Run(tt.acronym, func(t *testing.T) {
			service, historyRepo, _, _ := newTestInvoiceService(seedHistory...)

			inv, err := service.PreviewNext(context.Background(), tt.acronym)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if inv.FullString != tt.wantName {
				t.Errorf("expected %q, got %q", tt.wantName, inv.FullString)
			}
			if inv.CompanyName != tt.wantCompany {
				t.Errorf("expected company %q, got %q", tt.wantCompany, inv.CompanyName)
			}
			if inv.AdHoc {
				t.Error("expected registered company, got ad-hoc")
			}
			if historyRepo.replaceCalls != 0 {
				t.Error("preview must not write the history")
			}
		})
	}
}

func TestInvoiceService_PreviewNext_EmptyHistory(t *testing.T) {
	service, _, _, _ := newTestInvoiceService()

	inv, err := service.PreviewNext(context.Background(), "CHN")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inv.FullString != "INVOICE_FAB_SAMPERI_CHN001_19-10-26_(1st_H_26)" {
		t.Errorf("unexpected first invoice %q", inv.FullString)
	}
}

func TestInvoiceService_PreviewNext_UnknownCompany(t *testing.T) {
	service, _, _, _ := newTestInvoiceService(seedHistory...)

	_, err := service.PreviewNext(context.Background(), "XYZ")
	if err == nil {
		t.Fatal("expected error for unregistered company")
	}
	if !strings.Contains(err.Error(), "invoicer adhoc XYZ") {
		t.Errorf("expected hint towards adhoc, got %q", err.Error())
	}
}

func TestInvoiceService_PreviewNext_NumberExhausted(t *testing.T) {
	service, _, _, _ := newTestInvoiceService("INVOICE_FAB_SAMPERI_CHN999_01-01-26_(1st_Q_26)")

	_, err := service.PreviewNext(context.Background(), "CHN")
	if err == nil {
		t.Fatal("expected error once the sequence passes 999")
	}
}

func TestInvoiceService_PreviewNext_LoadError(t *testing.T) {
	service, historyRepo, _, _ := newTestInvoiceService()
	historyRepo.loadErr = errors.New("disk on fire")

	_, err := service.PreviewNext(context.Background(), "CHN")
	if err == nil || !strings.Contains(err.Error(), "failed to load history") {
		t.Errorf("expected wrapped load error, got %v", err)
	}
}

func TestInvoiceService_PreviewAdHoc(t *testing.T) {
	service, _, _, _ := newTestInvoiceService(seedHistory...)

	inv, err := service.PreviewAdHoc(context.Background(), primary.AdHocRequest{
		Acronym: "xyz",
		Period:  "first quarter 2025",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inv.FullString != "INVOICE_FAB_SAMPERI_XYZ018_19-10-26_(1st_Q_25)" {
		t.Errorf("unexpected ad-hoc invoice %q", inv.FullString)
	}
	if inv.CompanyName != "Società Ad-Hoc (XYZ)" {
		t.Errorf("unexpected company name %q", inv.CompanyName)
	}
	if !inv.AdHoc {
		t.Error("expected ad-hoc flag")
	}
}

func TestInvoiceService_PreviewAdHoc_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		req     primary.AdHocRequest
		wantErr string
	}{
		{
			name:    "registered acronym",
			req:     primary.AdHocRequest{Acronym: "CHN", Period: "Q1 2025"},
			wantErr: "belongs to Chin-Chin Records",
		},
		{
			name:    "bad acronym",
			req:     primary.AdHocRequest{Acronym: "X1", Period: "Q1 2025"},
			wantErr: "invalid acronym",
		},
		{
			name:    "blank period",
			req:     primary.AdHocRequest{Acronym: "XYZ", Period: "   "},
			wantErr: "billing period cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _ := newTestInvoiceService(seedHistory...)

			_, err := service.PreviewAdHoc(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestInvoiceService_SaveInvoice(t *testing.T) {
	service, historyRepo, _, logWriter := newTestInvoiceService(seedHistory...)
	name := "INVOICE_FAB_SAMPERI_CHN018_19-10-26_(3rd_Q_25)"

	inv, err := service.SaveInvoice(context.Background(), "  "+name+"  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inv.FullString != name {
		t.Errorf("expected %q, got %q", name, inv.FullString)
	}
	if len(historyRepo.history) != len(seedHistory)+1 {
		t.Fatalf("expected %d entries, got %d", len(seedHistory)+1, len(historyRepo.history))
	}
	if historyRepo.history[0] != name {
		t.Errorf("expected newest entry first, got %q", historyRepo.history[0])
	}
	if len(logWriter.calls) != 1 || logWriter.calls[0] != "create invoice "+name {
		t.Errorf("unexpected audit calls %v", logWriter.calls)
	}
}

func TestInvoiceService_SaveInvoice_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"duplicate", seedHistory[0], "already exists"},
		{"not an identifier", "hello", "not a valid invoice identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, historyRepo, _, logWriter := newTestInvoiceService(seedHistory...)

			_, err := service.SaveInvoice(context.Background(), tt.input)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
			if historyRepo.replaceCalls != 0 {
				t.Error("rejected save must not write the history")
			}
			if len(logWriter.calls) != 0 {
				t.Error("rejected save must not be audited")
			}
		})
	}
}

func TestInvoiceService_SaveInvoice_AuditFailureIsNotFatal(t *testing.T) {
	service, _, _, logWriter := newTestInvoiceService()
	logWriter.err = errors.New("activity log unavailable")

	_, err := service.SaveInvoice(context.Background(), "INVOICE_FAB_SAMPERI_CHN001_19-10-26_(1st_H_26)")
	if err != nil {
		t.Errorf("expected audit failure to be swallowed, got %v", err)
	}
}

func TestInvoiceService_ListInvoices(t *testing.T) {
	history := append([]string{"scribbled note"}, seedHistory...)
	service, _, _, _ := newTestInvoiceService(history...)
	ctx := context.Background()

	all, err := service.ListInvoices(ctx, primary.InvoiceFilters{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != len(history) {
		t.Fatalf("expected %d entries, got %d", len(history), len(all))
	}
	if all[0].Name != seedHistory[0] {
		t.Errorf("expected newest invoice first, got %q", all[0].Name)
	}
	last := all[len(all)-1]
	if last.Name != "scribbled note" || last.Invoice != nil {
		t.Errorf("expected unparseable entry last with nil invoice, got %+v", last)
	}

	chn, err := service.ListInvoices(ctx, primary.InvoiceFilters{Acronym: "chn", Limit: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(chn) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(chn))
	}
	if chn[0].Invoice.Number != 15 || chn[1].Invoice.Number != 13 {
		t.Errorf("unexpected order: %d, %d", chn[0].Invoice.Number, chn[1].Invoice.Number)
	}
}

func TestInvoiceService_GetInvoice(t *testing.T) {
	service, _, _, _ := newTestInvoiceService()
	ctx := context.Background()

	inv, err := service.GetInvoice(ctx, "INVOICE_FAB_SAMPERI_QQQ003_01-02-25_(misc)")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !inv.AdHoc || inv.CompanyName != "Società Ad-Hoc (QQQ)" {
		t.Errorf("expected ad-hoc company, got %+v", inv)
	}

	if _, err := service.GetInvoice(ctx, "INVOICE_FAB_SAMPERI_CHN3_01-02-25_(x)"); err == nil {
		t.Error("expected error for malformed identifier")
	}
}

func TestInvoiceService_EditInvoice(t *testing.T) {
	service, historyRepo, _, logWriter := newTestInvoiceService(seedHistory...)
	current := "INVOICE_FAB_SAMPERI_SSM005_16-05-24_(til_May_2024)"
	replacement := "INVOICE_FAB_SAMPERI_SSM005_16-05-24_(til_June_2024)"

	err := service.EditInvoice(context.Background(), primary.EditInvoiceRequest{Current: current, New: replacement})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if indexOf(historyRepo.history, current) != -1 {
		t.Error("old name should be gone")
	}
	if indexOf(historyRepo.history, replacement) == -1 {
		t.Error("new name should be present")
	}
	if len(logWriter.calls) != 1 || !strings.HasPrefix(logWriter.calls[0], "update invoice ") {
		t.Errorf("unexpected audit calls %v", logWriter.calls)
	}
}

func TestInvoiceService_EditInvoice_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		req      primary.EditInvoiceRequest
		wantErr  string
		notFound bool
	}{
		{
			name:    "empty new name",
			req:     primary.EditInvoiceRequest{Current: seedHistory[0], New: " "},
			wantErr: "cannot be empty",
		},
		{
			name:    "unchanged",
			req:     primary.EditInvoiceRequest{Current: seedHistory[0], New: seedHistory[0]},
			wantErr: "unchanged",
		},
		{
			name:     "missing",
			req:      primary.EditInvoiceRequest{Current: "nope", New: "other"},
			wantErr:  "invoice not found",
			notFound: true,
		},
		{
			name:    "collides",
			req:     primary.EditInvoiceRequest{Current: seedHistory[0], New: seedHistory[1]},
			wantErr: "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, historyRepo, _, _ := newTestInvoiceService(seedHistory...)

			err := service.EditInvoice(context.Background(), tt.req)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
			if errors.Is(err, coreinvoice.ErrNotFound) != tt.notFound {
				t.Errorf("errors.Is(ErrNotFound) = %v, want %v", !tt.notFound, tt.notFound)
			}
			if historyRepo.replaceCalls != 0 {
				t.Error("rejected edit must not write the history")
			}
		})
	}
}

func TestInvoiceService_DeleteInvoice(t *testing.T) {
	service, historyRepo, _, logWriter := newTestInvoiceService(seedHistory...)
	ctx := context.Background()
	target := seedHistory[2]

	err := service.DeleteInvoice(ctx, primary.DeleteInvoiceRequest{Name: target})
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected confirmation error, got %v", err)
	}

	if err := service.DeleteInvoice(ctx, primary.DeleteInvoiceRequest{Name: target, Force: true}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(historyRepo.history) != len(seedHistory)-1 {
		t.Errorf("expected %d entries, got %d", len(seedHistory)-1, len(historyRepo.history))
	}
	if indexOf(historyRepo.history, target) != -1 {
		t.Error("deleted entry still present")
	}
	if len(logWriter.calls) != 1 || logWriter.calls[0] != "delete invoice "+target {
		t.Errorf("unexpected audit calls %v", logWriter.calls)
	}

	err = service.DeleteInvoice(ctx, primary.DeleteInvoiceRequest{Name: target, Force: true})
	if !errors.Is(err, coreinvoice.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestInvoiceService_ImportInvoices(t *testing.T) {
	service, historyRepo, files, logWriter := newTestInvoiceService(seedHistory...)
	ctx := context.Background()
	files.files["backup.txt"] = []byte(strings.Join([]string{
		"Backup of 2025-10-18",
		"  INVOICE_FAB_SAMPERI_CHN001_01-01-25_(1st_Q_25)  ",
		"",
		"INVOICE_FAB_SAMPERI_AGO002_02-02-25_(1st_and_2nd_Q_25)",
	}, "\n"))

	_, err := service.ImportInvoices(ctx, primary.ImportInvoicesRequest{Path: "backup.txt"})
	if err == nil || !strings.Contains(err.Error(), "with 2 invoice(s)") {
		t.Fatalf("expected confirmation error, got %v", err)
	}
	if historyRepo.replaceCalls != 0 {
		t.Fatal("unconfirmed import must not write the history")
	}

	resp, err := service.ImportInvoices(ctx, primary.ImportInvoicesRequest{Path: "backup.txt", Force: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Imported != 2 || resp.Replaced != len(seedHistory) {
		t.Errorf("unexpected response %+v", resp)
	}
	if historyRepo.history[0] != "INVOICE_FAB_SAMPERI_AGO002_02-02-25_(1st_and_2nd_Q_25)" {
		t.Errorf("expected imported history sorted newest first, got %v", historyRepo.history)
	}
	if len(logWriter.calls) != 1 || !strings.HasPrefix(logWriter.calls[0], "update history backup.txt count") {
		t.Errorf("unexpected audit calls %v", logWriter.calls)
	}
}

func TestInvoiceService_ImportInvoices_BadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		wantErr error
	}{
		{name: "missing file", content: nil, wantErr: os.ErrNotExist},
		{name: "empty file", content: ptr(""), wantErr: coreinvoice.ErrEmptyBackup},
		{name: "no identifiers", content: ptr("hello\nworld"), wantErr: coreinvoice.ErrNoInvoicesFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, historyRepo, files, _ := newTestInvoiceService(seedHistory...)
			if tt.content != nil {
				files.files["in.txt"] = []byte(*tt.content)
			}

			_, err := service.ImportInvoices(context.Background(), primary.ImportInvoicesRequest{Path: "in.txt", Force: true})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if len(historyRepo.history) != len(seedHistory) {
				t.Error("failed import must leave the history untouched")
			}
		})
	}
}

func TestInvoiceService_ExportInvoices(t *testing.T) {
	service, _, files, _ := newTestInvoiceService(seedHistory...)

	resp, err := service.ExportInvoices(context.Background(), primary.ExportInvoicesRequest{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Exported != len(seedHistory) {
		t.Errorf("expected %d exported, got %d", len(seedHistory), resp.Exported)
	}
	if resp.Path != "/backups/invoices_backup_2026-10-19.txt" {
		t.Errorf("unexpected path %q", resp.Path)
	}

	data := string(files.files["invoices_backup_2026-10-19.txt"])
	if data != strings.Join(seedHistory, "\n") {
		t.Errorf("unexpected backup body %q", data)
	}
}

func TestInvoiceService_ExportThenImportRoundTrip(t *testing.T) {
	service, historyRepo, _, _ := newTestInvoiceService(seedHistory...)
	ctx := context.Background()

	if _, err := service.ExportInvoices(ctx, primary.ExportInvoicesRequest{Path: "snap.txt"}); err != nil {
		t.Fatalf("export: %v", err)
	}
	historyRepo.history = nil

	resp, err := service.ImportInvoices(ctx, primary.ImportInvoicesRequest{Path: "snap.txt", Force: true})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if resp.Imported != len(seedHistory) {
		t.Errorf("expected %d imported, got %d", len(seedHistory), resp.Imported)
	}
	for i, name := range seedHistory {
		if historyRepo.history[i] != name {
			t.Errorf("entry %d: expected %q, got %q", i, name, historyRepo.history[i])
		}
	}
}

func TestInvoiceService_PeriodTools(t *testing.T) {
	service, _, _, _ := newTestInvoiceService()

	if got := service.NormalizePeriod("second half 2025"); got != "2nd_H_25" {
		t.Errorf("NormalizePeriod = %q, want 2nd_H_25", got)
	}

	next, rule := service.AdvancePeriod("4th_Q_25")
	if next != "1st_Q_26" || rule != "ordinal-quarter" {
		t.Errorf("AdvancePeriod = (%q, %q), want (1st_Q_26, ordinal-quarter)", next, rule)
	}
}

func ptr(s string) *string { return &s }
