package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/example/invoicer/internal/core/company"
	"github.com/example/invoicer/internal/logger"
	"github.com/example/invoicer/internal/ports/primary"
	"github.com/example/invoicer/internal/ports/secondary"
)

// companyFile is the YAML layout used by company import and export.
type companyFile struct {
	Companies []companyFileEntry `yaml:"companies"`
}

type companyFileEntry struct {
	Acronym string `yaml:"acronym"`
	Name    string `yaml:"name"`
}

// CompanyServiceImpl implements the CompanyService interface.
type CompanyServiceImpl struct {
	companyRepo secondary.CompanyRepository
	files       secondary.FileStore
	logWriter   secondary.LogWriter
	log         zerolog.Logger
}

// NewCompanyService creates a new CompanyService with injected dependencies.
func NewCompanyService(
	companyRepo secondary.CompanyRepository,
	files secondary.FileStore,
	logWriter secondary.LogWriter,
) *CompanyServiceImpl {
	return &CompanyServiceImpl{
		companyRepo: companyRepo,
		files:       files,
		logWriter:   logWriter,
		log:         logger.WithComponent("company"),
	}
}

// ListCompanies returns the registered companies sorted by acronym.
func (s *CompanyServiceImpl) ListCompanies(ctx context.Context) ([]*primary.Company, error) {
	records, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	companies := make([]*primary.Company, len(records))
	for i, r := range records {
		companies[i] = s.recordToCompany(r)
	}
	return companies, nil
}

// GetCompany retrieves a registered company by acronym.
func (s *CompanyServiceImpl) GetCompany(ctx context.Context, acronym string) (*primary.Company, error) {
	acronym = normalizeAcronym(acronym)
	record, err := s.companyRepo.GetByAcronym(ctx, acronym)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("company %s is not registered: %w", acronym, err)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return s.recordToCompany(record), nil
}

// AddCompany registers a new company.
func (s *CompanyServiceImpl) AddCompany(ctx context.Context, req primary.AddCompanyRequest) (*primary.Company, error) {
	reg, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.add(ctx, reg, companyFileEntry{Acronym: req.Acronym, Name: req.Name})
	if err != nil {
		return nil, err
	}
	return s.recordToCompany(record), nil
}

// ImportCompanies registers every company listed in a YAML file.
// Acronyms that are already registered are skipped; an invalid entry
// stops the import after the entries before it were added.
func (s *CompanyServiceImpl) ImportCompanies(ctx context.Context, path string) (*primary.ImportCompaniesResponse, error) {
	data, err := s.files.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	var file companyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(file.Companies) == 0 {
		return nil, fmt.Errorf("no companies found in %s", path)
	}

	reg, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}

	resp := &primary.ImportCompaniesResponse{Added: []string{}, Skipped: []string{}}
	for i, entry := range file.Companies {
		acronym := normalizeAcronym(entry.Acronym)
		if _, exists := reg.Lookup(acronym); exists {
			resp.Skipped = append(resp.Skipped, acronym)
			continue
		}

		record, err := s.add(ctx, reg, entry)
		if err != nil {
			return resp, fmt.Errorf("entry %d: %w", i+1, err)
		}
		reg[record.Acronym] = company.Company{Acronym: record.Acronym, Name: record.Name}
		resp.Added = append(resp.Added, record.Acronym)
	}

	s.log.Info().Str("path", path).Int("added", len(resp.Added)).Int("skipped", len(resp.Skipped)).Msg("companies imported")
	return resp, nil
}

// ExportCompanies writes the registry to a YAML file.
func (s *CompanyServiceImpl) ExportCompanies(ctx context.Context, path string) (int, error) {
	records, err := s.companyRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list companies: %w", err)
	}

	file := companyFile{Companies: make([]companyFileEntry, len(records))}
	for i, r := range records {
		file.Companies[i] = companyFileEntry{Acronym: r.Acronym, Name: r.Name}
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return 0, fmt.Errorf("failed to encode companies: %w", err)
	}
	if _, err := s.files.WriteFile(ctx, path, data); err != nil {
		return 0, fmt.Errorf("failed to export companies: %w", err)
	}
	return len(records), nil
}

// Helper methods

func (s *CompanyServiceImpl) add(ctx context.Context, reg company.Registry, entry companyFileEntry) (*secondary.CompanyRecord, error) {
	acronym := normalizeAcronym(entry.Acronym)
	name := strings.TrimSpace(entry.Name)

	guard := company.CanAddCompany(company.AddContext{
		Acronym:  acronym,
		Name:     name,
		Existing: reg,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	record := &secondary.CompanyRecord{Acronym: acronym, Name: name}
	if err := s.companyRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	if err := s.logWriter.LogCreate(ctx, secondary.EntityCompany, acronym); err != nil {
		s.log.Warn().Err(err).Msg("failed to write activity log")
	}
	return record, nil
}

func (s *CompanyServiceImpl) registry(ctx context.Context) (company.Registry, error) {
	records, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}
	reg := company.NewRegistry()
	for _, r := range records {
		reg[r.Acronym] = company.Company{Acronym: r.Acronym, Name: r.Name}
	}
	return reg, nil
}

func (s *CompanyServiceImpl) recordToCompany(r *secondary.CompanyRecord) *primary.Company {
	return &primary.Company{
		Acronym:   r.Acronym,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure CompanyServiceImpl implements the interface
var _ primary.CompanyService = (*CompanyServiceImpl)(nil)
