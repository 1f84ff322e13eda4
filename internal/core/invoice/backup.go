package invoice

import (
	"strings"
	"time"
)

// ExtractImportLines pulls identifier lines out of a backup file body.
// Lines are trimmed; anything not starting with Prefix is ignored.
func ExtractImportLines(content string) ([]string, error) {
	if content == "" {
		return nil, ErrEmptyBackup
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, Prefix) {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrNoInvoicesFound
	}
	return lines, nil
}

// RenderBackup renders the history as a backup file body, one identifier
// per line.
func RenderBackup(history []string) string {
	return strings.Join(history, "\n")
}

// BackupFileName is the default file name for a backup taken at now.
func BackupFileName(now time.Time) string {
	return "invoices_backup_" + now.Format("2006-01-02") + ".txt"
}
