package primary

import "context"

// CompanyService defines the primary port for company registry operations.
type CompanyService interface {
	// ListCompanies returns the registered companies sorted by acronym.
	ListCompanies(ctx context.Context) ([]*Company, error)

	// GetCompany retrieves a registered company by acronym.
	GetCompany(ctx context.Context, acronym string) (*Company, error)

	// AddCompany registers a new company.
	AddCompany(ctx context.Context, req AddCompanyRequest) (*Company, error)

	// ImportCompanies registers every company listed in a YAML file.
	// Acronyms that are already registered are skipped.
	ImportCompanies(ctx context.Context, path string) (*ImportCompaniesResponse, error)

	// ExportCompanies writes the registry to a YAML file.
	ExportCompanies(ctx context.Context, path string) (int, error)
}

// Company represents a registered company at the port boundary.
type Company struct {
	Acronym   string
	Name      string
	CreatedAt string
}

// AddCompanyRequest contains parameters for registering a company.
type AddCompanyRequest struct {
	Acronym string
	Name    string
}

// ImportCompaniesResponse contains the result of a company import.
type ImportCompaniesResponse struct {
	Added   []string
	Skipped []string
}
