package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed sql
var files embed.FS

// Files returns the migration files for a configured database driver.
func Files(driver string) (fs.FS, error) {
	sub, err := fs.Sub(files, "sql/"+driver)
	if err != nil {
		return nil, fmt.Errorf("migrations for %q: %w", driver, err)
	}
	if _, err := fs.Stat(sub, "."); err != nil {
		return nil, fmt.Errorf("no migrations for driver %q: %w", driver, err)
	}
	return sub, nil
}
