package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// RunMigrations brings the schema, including the invoice totals view,
// up to date for the given database type.
func RunMigrations(db *sql.DB, dbType string) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	dialect, err := normalizeDialect(dbType)
	if err != nil {
		return err
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir+"/"+dialect)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	var driver database.Driver
	switch dialect {
	case "mysql":
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	case "postgres":
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case "sqlite":
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	}
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, dialect, driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// Schema returns the concatenated up migrations for a database type.
func Schema(dbType string) (string, error) {
	dialect, err := normalizeDialect(dbType)
	if err != nil {
		return "", err
	}

	dir := migrationsDir + "/" + dialect
	matches, err := fs.Glob(embeddedMigrations, dir+"/*.up.sql")
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no migrations for %s", dialect)
	}

	var out []byte
	for _, name := range matches {
		b, err := embeddedMigrations.ReadFile(name)
		if err != nil {
			return "", err
		}
		out = append(out, b...)
		out = append(out, '\n')
	}
	return string(out), nil
}

func normalizeDialect(dbType string) (string, error) {
	switch dbType {
	case "mysql", "mariadb":
		return "mysql", nil
	case "postgres":
		return "postgres", nil
	case "sqlite":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported %s type", dbType)
	}
}
