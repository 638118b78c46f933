package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacenotes-be/internal/dto"
	"spacenotes-be/internal/repository/unitofwork"
	"spacenotes-be/internal/service"
	"spacenotes-be/pkg/database"
)

func testDSN(t *testing.T) string {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}
	return dsn
}

func TestGormConnection(t *testing.T) {
	dsn := testDSN(t)

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SequenceRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Space Repository", func(t *testing.T) {
		count, err := uow.SpaceRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Space count: %d", count)
	})
}

// TestConcurrentNoteNumbers exercises the per-space allocator under real
// row locking: 20 goroutines create notes in the same space and every
// note must get a distinct number.
func TestConcurrentNoteNumbers(t *testing.T) {
	dsn := testDSN(t)

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	cache := service.NewSessionCache(time.Minute)
	guard := service.NewIntegrityGuard()
	var logger noopLogger

	renames := service.NewRenameService(uowFactory, cache, logger, nil)
	users := service.NewUserService(uowFactory, renames, guard, cache, logger, nil)
	spaces := service.NewSpaceService(uowFactory, renames, logger, nil)
	notes := service.NewNoteService(uowFactory, logger, nil)

	ctx := context.Background()
	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("loadtest-%d", suffix)
	slug := fmt.Sprintf("loadtest-%d", suffix)

	_, err = users.Create(ctx, &dto.RegisterRequest{Username: username, Password: "integration-pass"})
	require.NoError(t, err)
	_, err = spaces.Create(ctx, &dto.CreateSpaceRequest{Slug: slug, Title: "Load Test"})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = spaces.Delete(ctx, slug)
		_ = users.Delete(ctx, username)
	})

	const workers = 20
	numbers := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := notes.Create(ctx, username, slug, &dto.CreateNoteRequest{})
			if err != nil {
				t.Errorf("concurrent create failed: %v", err)
				return
			}
			numbers <- res.Number
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[int64]bool)
	for n := range numbers {
		assert.False(t, seen[n], "number %d allocated twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, workers)

	for n := range seen {
		require.NoError(t, notes.Delete(ctx, slug, n))
	}
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
