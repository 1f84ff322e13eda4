package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/invoicer/internal/core/company"
)

// InitialHistory is the invoice history a fresh install starts from.
var InitialHistory = []string{
	"INVOICE_FAB_SAMPERI_FRS017_17-10-25_(1st_H_25)",
	"INVOICE_FAB_SAMPERI_AGO016_02-10-25_(1st_and_2nd_Q_25)",
	"INVOICE_FAB_SAMPERI_CHN015_19-07-25_(2nd_Q_25)",
	"INVOICE_FAB_SAMPERI_NVI014_14-07-25_(Nuovo_IMAIE)",
	"INVOICE_FAB_SAMPERI_CHN013_16-04-25_(1st_Q_25)",
	"INVOICE_FAB_SAMPERI_AGO012_16-04-25_(3rd_and_4th_Q_24)",
	"INVOICE_FAB_SAMPERI_CHN011_03-01-25_(4th_Q_24)",
	"INVOICE_FAB_SAMPERI_AGO010_14-10-24_(1st_and_2nd_Q_24)",
	"INVOICE_FAB_SAMPERI_CHN009_14-10-24_(3rd_Q_24)",
	"INVOICE_FAB_SAMPERI_FRS008_30-09-24_(1st_H_24)",
	"INVOICE_FAB_SAMPERI_NVI007_19-09-24_(Nuovo_IMAIE)",
	"INVOICE_FAB_SAMPERI_CHN006_08-07-24_(2nd_Q_24)",
	"INVOICE_FAB_SAMPERI_SSM005_16-05-24_(til_May_2024)",
	"INVOICE_FAB_SAMPERI_AGO004_16-04-24_(3rd_and_4th_Q_23)",
	"INVOICE_FAB_SAMPERI_CHN003_04-04-24_(1st_Q_24)",
	"INVOICE_FAB_SAMPERI_FRS002_04-04-24_(2nd_H_23)",
}

// SeedCompanies registers the default companies that are not yet present.
func SeedCompanies(ctx context.Context, database *sql.DB) error {
	for _, c := range company.Defaults().Companies() {
		if _, err := database.ExecContext(ctx,
			"INSERT OR IGNORE INTO companies (acronym, name) VALUES (?, ?)",
			c.Acronym, c.Name,
		); err != nil {
			return fmt.Errorf("seed companies: %w", err)
		}
	}
	return nil
}

// SeedFixtures populates a fresh database with the default companies and
// the initial invoice history. The history is only written when empty.
func SeedFixtures(ctx context.Context, database *sql.DB) error {
	if err := SeedCompanies(ctx, database); err != nil {
		return err
	}

	var count int
	if err := database.QueryRowContext(ctx, "SELECT COUNT(*) FROM invoices").Scan(&count); err != nil {
		return fmt.Errorf("seed invoices: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i, name := range InitialHistory {
		if _, err := database.ExecContext(ctx,
			"INSERT INTO invoices (position, name) VALUES (?, ?)",
			i, name,
		); err != nil {
			return fmt.Errorf("seed invoices: %w", err)
		}
	}
	return nil
}
