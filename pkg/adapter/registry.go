package adapter

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	// Drivers for the dialects that can be opened directly.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]string{
		"sqlite":   "sqlite",
		"postgres": "pgx",
	}
)

// RegisterDriver associates a database/sql driver name with a dialect.
func RegisterDriver(dialectName, driver string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(dialectName)] = driver
}

// Driver returns the database/sql driver registered for a dialect.
func Driver(dialectName string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[strings.ToLower(dialectName)]
	return d, ok
}

// ListDrivers returns the dialect names that have a driver (sorted).
func ListDrivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens a database for a dialect and returns a Runner over it.
func Open(dialectName, dsn string, logger *slog.Logger) (*Runner, error) {
	driver, ok := Driver(dialectName)
	if !ok {
		return nil, &UnknownDriverError{Dialect: dialectName, Available: ListDrivers()}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialectName, err)
	}
	return NewRunner(db, logger), nil
}

// UnknownDriverError is returned when no driver is registered for a dialect.
type UnknownDriverError struct {
	Dialect   string
	Available []string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("no driver registered for dialect %q\nAvailable: %v", e.Dialect, e.Available)
}
