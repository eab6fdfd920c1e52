package kv

import (
	"context"
	"fmt"
	"os"
)

// Open selects a durable backend using environment variables. Defaults to
// sqlite when unset.
//
//	DEALERDESK_STORAGE_DRIVER: memory|sqlite|postgres|s3 (default sqlite)
//	DEALERDESK_SQLITE_PATH: path to sqlite file (default ./dealerdesk.db)
//	DEALERDESK_POSTGRES_DSN: postgres DSN when driver=postgres
//	(S3 specific variables documented in s3.go)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("DEALERDESK_STORAGE_DRIVER")
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return NewSQLite(os.Getenv("DEALERDESK_SQLITE_PATH"))
	case DriverPostgres:
		return NewPostgres(ctx, os.Getenv("DEALERDESK_POSTGRES_DSN"))
	case DriverS3:
		return OpenS3FromEnv(ctx)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
