// Package export writes the generated credentials to offline artifacts for
// operator distribution. The output includes the one-time plaintext password;
// callers must treat the files as sensitive.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/fixitfast/adminseed/internal/admin"
)

// WriteCSV writes the credential sheet to path, header first.
func WriteCSV(path string, accounts []admin.Account) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv export: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(admin.ExportColumns); err != nil {
		f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, acc := range accounts {
		if err := w.Write(acc.ExportRow()); err != nil {
			f.Close()
			return fmt.Errorf("write csv row for %s: %w", acc.Username, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv export: %w", err)
	}
	return nil
}
