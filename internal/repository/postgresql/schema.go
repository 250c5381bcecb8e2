package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/suhana-bhanu/attendance-system/internal/pkg/database"
)

//go:embed schema.sql
var schema string

// EnsureSchema creates the tables and indexes the repositories rely on.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		if _, err := GetQuerier(ctx, db).Exec(ctx, schema); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		return nil
	})
}
