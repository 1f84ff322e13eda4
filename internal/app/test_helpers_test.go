package app

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/example/invoicer/internal/ports/secondary"
)

// fixedNow is 19 October 2026: dates render as 19-10-26, the year suffix is 26.
var fixedNow = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// seedHistory mirrors the first-run fixture history, newest first.
var seedHistory = []string{
	"INVOICE_FAB_SAMPERI_FRS017_17-10-25_(1st_H_25)",
	"INVOICE_FAB_SAMPERI_AGO016_02-10-25_(1st_and_2nd_Q_25)",
	"INVOICE_FAB_SAMPERI_CHN015_19-07-25_(2nd_Q_25)",
	"INVOICE_FAB_SAMPERI_NVI014_14-07-25_(Nuovo_IMAIE)",
	"INVOICE_FAB_SAMPERI_CHN013_16-04-25_(1st_Q_25)",
	"INVOICE_FAB_SAMPERI_AGO012_16-04-25_(3rd_and_4th_Q_24)",
	"INVOICE_FAB_SAMPERI_CHN011_03-01-25_(4th_Q_24)",
	"INVOICE_FAB_SAMPERI_SSM005_16-05-24_(til_May_2024)",
}

// Ensure mocks implement the interfaces
var (
	_ secondary.HistoryRepository  = (*mockHistoryRepository)(nil)
	_ secondary.CompanyRepository  = (*mockCompanyRepository)(nil)
	_ secondary.ActivityRepository = (*mockActivityRepository)(nil)
	_ secondary.FileStore          = (*mockFileStore)(nil)
	_ secondary.LogWriter          = (*mockLogWriter)(nil)
)

// mockHistoryRepository implements secondary.HistoryRepository for testing.
type mockHistoryRepository struct {
	history      []string
	loadErr      error
	replaceErr   error
	replaceCalls int
}

func newMockHistoryRepository(history ...string) *mockHistoryRepository {
	return &mockHistoryRepository{history: append([]string{}, history...)}
}

func (m *mockHistoryRepository) Load(ctx context.Context) ([]string, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]string{}, m.history...), nil
}

func (m *mockHistoryRepository) Replace(ctx context.Context, history []string) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.history = append([]string{}, history...)
	return nil
}

// mockCompanyRepository implements secondary.CompanyRepository for testing.
type mockCompanyRepository struct {
	companies map[string]*secondary.CompanyRecord
	createErr error
}

func newMockCompanyRepository() *mockCompanyRepository {
	return &mockCompanyRepository{companies: make(map[string]*secondary.CompanyRecord)}
}

// newSeededCompanyRepository returns a repository holding the built-in companies.
func newSeededCompanyRepository() *mockCompanyRepository {
	m := newMockCompanyRepository()
	for acr, name := range map[string]string{
		"CHN": "Chin-Chin Records",
		"AGO": "Agogo Records",
		"FRS": "Freshly Squeezed",
		"NVI": "Nuovo IMAIE",
		"SSM": "Tape Five",
	} {
		m.companies[acr] = &secondary.CompanyRecord{Acronym: acr, Name: name, CreatedAt: "2025-10-03T00:00:00Z"}
	}
	return m
}

func (m *mockCompanyRepository) List(ctx context.Context) ([]*secondary.CompanyRecord, error) {
	result := make([]*secondary.CompanyRecord, 0, len(m.companies))
	for _, c := range m.companies {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Acronym < result[j].Acronym })
	return result, nil
}

func (m *mockCompanyRepository) GetByAcronym(ctx context.Context, acronym string) (*secondary.CompanyRecord, error) {
	if c, ok := m.companies[acronym]; ok {
		return c, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockCompanyRepository) Create(ctx context.Context, company *secondary.CompanyRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.companies[company.Acronym]; ok {
		return errors.New("UNIQUE constraint failed: companies.acronym")
	}
	m.companies[company.Acronym] = company
	return nil
}

// mockActivityRepository implements secondary.ActivityRepository for testing.
type mockActivityRepository struct {
	entries map[string]*secondary.ActivityRecord
}

func newMockActivityRepository() *mockActivityRepository {
	return &mockActivityRepository{entries: make(map[string]*secondary.ActivityRecord)}
}

func (m *mockActivityRepository) Create(ctx context.Context, entry *secondary.ActivityRecord) error {
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockActivityRepository) GetByID(ctx context.Context, id string) (*secondary.ActivityRecord, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockActivityRepository) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	var result []*secondary.ActivityRecord
	for _, e := range m.entries {
		if filters.EntityType != "" && e.EntityType != filters.EntityType {
			continue
		}
		if filters.Action != "" && e.Action != filters.Action {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp > result[j].Timestamp })

	// Apply limit
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockActivityRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	count := 0
	cutoff := time.Now().AddDate(0, 0, -days)
	for id, e := range m.entries {
		ts, err := time.Parse(time.RFC3339, e.Timestamp)
		if err != nil {
			continue
		}
		if ts.Before(cutoff) {
			delete(m.entries, id)
			count++
		}
	}
	return count, nil
}

// mockFileStore implements secondary.FileStore in memory.
type mockFileStore struct {
	files    map[string][]byte
	writeErr error
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{files: make(map[string][]byte)}
}

func (m *mockFileStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return data, nil
}

func (m *mockFileStore) WriteFile(ctx context.Context, path string, data []byte) (string, error) {
	if m.writeErr != nil {
		return "", m.writeErr
	}
	m.files[path] = data
	return "/backups/" + strings.TrimPrefix(path, "/backups/"), nil
}

// mockLogWriter implements secondary.LogWriter and records every call.
type mockLogWriter struct {
	calls []string
	err   error
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.calls = append(m.calls, "create "+entityType+" "+entityID)
	return m.err
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.calls = append(m.calls, "update "+entityType+" "+entityID+" "+fieldName+" "+oldValue+" -> "+newValue)
	return m.err
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.calls = append(m.calls, "delete "+entityType+" "+entityID)
	return m.err
}
