package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultTimeout bounds a single test's database work.
const DefaultTimeout = 10 * time.Second

var (
	uriOnce sync.Once
	testURI string
	uriErr  error
)

// mongoURI returns MONGO_TEST_URI when set, otherwise starts one MongoDB
// container for the whole test binary. Ryuk reaps the container on exit.
func mongoURI() (string, error) {
	uriOnce.Do(func() {
		if v := os.Getenv("MONGO_TEST_URI"); v != "" {
			testURI = v
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		c, err := mongodb.Run(ctx, "mongo:7")
		if err != nil {
			uriErr = err
			return
		}
		testURI, uriErr = c.ConnectionString(ctx)
	})
	return testURI, uriErr
}

// SetupTestDB returns a fresh database for t and drops it when the test ends.
// The test is skipped when no MongoDB is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB test in short mode")
	}

	uri, err := mongoURI()
	if err != nil {
		t.Skipf("MongoDB unavailable: %v", err)
	}

	ctx, cancel := TestContext()
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("MongoDB connect failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		t.Skipf("MongoDB ping failed: %v", err)
	}

	db := client.Database(fmt.Sprintf("opphub_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := TestContext()
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

// TestContext returns a context with DefaultTimeout.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultTimeout)
}
