package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/suhana-bhanu/attendance-system/internal/pkg/database"
	"github.com/suhana-bhanu/attendance-system/internal/repository/mongodb"
)

// TestDatabaseSetup holds the connection used by the integration tests
type TestDatabaseSetup struct {
	DB *database.MongoDB
}

// NewTestDatabase connects to TEST_MONGODB_URI and creates a throwaway
// database for the calling test, which is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}

	ctx := context.Background()
	name := fmt.Sprintf("attendance_test_%d", time.Now().UnixNano())
	db, err := database.NewMongoDB(ctx, uri, name)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = db.Close(ctx)
		t.Fatalf("failed to create indexes: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	t.Cleanup(setup.Close)

	return setup
}

// Close drops the test database and disconnects
func (t *TestDatabaseSetup) Close() {
	ctx := context.Background()
	_ = t.DB.Database.Drop(ctx)
	_ = t.DB.Close(ctx)
}
