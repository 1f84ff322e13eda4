// Package wire provides dependency injection for invoicer.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"io"
	"os"
	"sync"

	cliadapter "github.com/example/invoicer/internal/adapters/cli"
	"github.com/example/invoicer/internal/adapters/filesystem"
	"github.com/example/invoicer/internal/adapters/sqlite"
	"github.com/example/invoicer/internal/app"
	"github.com/example/invoicer/internal/config"
	"github.com/example/invoicer/internal/db"
	"github.com/example/invoicer/internal/logger"
	"github.com/example/invoicer/internal/ports/primary"
)

var (
	cfg             *config.Config
	database        *sql.DB
	invoiceService  primary.InvoiceService
	companyService  primary.CompanyService
	activityService primary.ActivityService
	once            sync.Once
)

// Configure sets the configuration used when services are first built.
// Calls after the first service access have no effect.
func Configure(c *config.Config) {
	cfg = c
}

// InvoiceService returns the singleton InvoiceService instance.
func InvoiceService() primary.InvoiceService {
	once.Do(initServices)
	return invoiceService
}

// CompanyService returns the singleton CompanyService instance.
func CompanyService() primary.CompanyService {
	once.Do(initServices)
	return companyService
}

// ActivityService returns the singleton ActivityService instance.
func ActivityService() primary.ActivityService {
	once.Do(initServices)
	return activityService
}

// Close releases the database if it was opened.
func Close() error {
	if database == nil {
		return nil
	}
	return database.Close()
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	log := logger.WithComponent("wire")
	ctx := context.Background()

	if cfg == nil {
		dir, err := config.DefaultDir()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to resolve config directory")
		}
		if cfg, err = config.LoadConfig(dir); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	// Get database connection
	var (
		fresh bool
		err   error
	)
	database, fresh, err = db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to initialize database")
	}
	if fresh {
		if err := Seed(ctx, database, cfg.Seed); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	historyRepo := sqlite.NewHistoryRepository(database)
	companyRepo := sqlite.NewCompanyRepository(database)
	activityRepo := sqlite.NewActivityRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(activityRepo)
	files := filesystem.NewFileStore(cfg.BackupDir)

	// Create services (primary ports implementation)
	invoiceService = app.NewInvoiceService(historyRepo, companyRepo, files, logWriter)
	companyService = app.NewCompanyService(companyRepo, files, logWriter)
	activityService = app.NewActivityService(activityRepo)
}

// Seed fills a fresh database: always the default companies, and the
// sample history too when withHistory is set.
func Seed(ctx context.Context, database *sql.DB, withHistory bool) error {
	log := logger.WithComponent("wire")
	if withHistory {
		log.Info().Msg("seeding companies and sample history")
		return db.SeedFixtures(ctx, database)
	}
	log.Info().Msg("seeding companies")
	return db.SeedCompanies(ctx, database)
}

// InvoiceAdapter returns a new InvoiceAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func InvoiceAdapter() *cliadapter.InvoiceAdapter {
	return InvoiceAdapterWithOutput(os.Stdout)
}

// InvoiceAdapterWithOutput returns a new InvoiceAdapter writing to the given output.
func InvoiceAdapterWithOutput(out io.Writer) *cliadapter.InvoiceAdapter {
	once.Do(initServices)
	return cliadapter.NewInvoiceAdapter(invoiceService, out)
}

// CompanyAdapter returns a new CompanyAdapter writing to stdout.
func CompanyAdapter() *cliadapter.CompanyAdapter {
	return CompanyAdapterWithOutput(os.Stdout)
}

// CompanyAdapterWithOutput returns a new CompanyAdapter writing to the given output.
func CompanyAdapterWithOutput(out io.Writer) *cliadapter.CompanyAdapter {
	once.Do(initServices)
	return cliadapter.NewCompanyAdapter(companyService, out)
}

// ActivityAdapter returns a new ActivityAdapter writing to stdout.
func ActivityAdapter() *cliadapter.ActivityAdapter {
	return ActivityAdapterWithOutput(os.Stdout)
}

// ActivityAdapterWithOutput returns a new ActivityAdapter writing to the given output.
func ActivityAdapterWithOutput(out io.Writer) *cliadapter.ActivityAdapter {
	once.Do(initServices)
	return cliadapter.NewActivityAdapter(activityService, out)
}
