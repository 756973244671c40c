package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/forgo/smartwords/internal/database"
)

// TestMongoSetRepository_Integration runs the store suite against a real
// MongoDB started with testcontainers.
func TestMongoSetRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	defer func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	db, err := database.NewMongoDB(ctx, database.MongoConfig{
		URI:              fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Database:         "smartwords_test",
		OperationTimeout: 5 * time.Second,
	}, nil)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	runSetStoreSuite(t, func(t *testing.T) SetStore {
		_, err := db.Collection(SetCollection).DeleteMany(ctx, bson.M{})
		require.NoError(t, err)
		return NewMongoSetRepository(db)
	})
}
