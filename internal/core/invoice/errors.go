package invoice

import "errors"

var (
	// ErrEmptyBackup is returned when an import file has no content at all.
	ErrEmptyBackup = errors.New("backup file is empty")
	// ErrNoInvoicesFound is returned when an import file has no identifier lines.
	ErrNoInvoicesFound = errors.New("no valid invoices found in backup file")
	// ErrNotFound is returned when an identifier is not in the history.
	ErrNotFound = errors.New("invoice not found")
)
