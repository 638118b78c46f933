package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"spacenotes-be/internal/dto"
	"spacenotes-be/internal/model"
	"spacenotes-be/internal/repository/unitofwork"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// In-memory sqlite: one connection, one database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Space{},
		&model.SpaceMember{},
		&model.SpaceSequence{},
		&model.Note{},
		&model.Attachment{},
	))
	return db
}

type testEnv struct {
	db          *gorm.DB
	uowFactory  unitofwork.RepositoryFactory
	cache       *SessionCache
	renames     IRenameService
	auth        IAuthService
	users       IUserService
	spaces      ISpaceService
	notes       INoteService
	attachments IAttachmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	cache := NewSessionCache(time.Minute)
	guard := NewIntegrityGuard()
	log := noopLogger{}

	renames := NewRenameService(uowFactory, cache, log, nil)
	return &testEnv{
		db:          db,
		uowFactory:  uowFactory,
		cache:       cache,
		renames:     renames,
		auth:        NewAuthService(uowFactory, cache, time.Hour, log),
		users:       NewUserService(uowFactory, renames, guard, cache, log, nil),
		spaces:      NewSpaceService(uowFactory, renames, log, nil),
		notes:       NewNoteService(uowFactory, log, nil),
		attachments: NewAttachmentService(uowFactory, guard, log, nil),
	}
}

func (e *testEnv) mustCreateUser(t *testing.T, username string) {
	t.Helper()
	_, err := e.users.Create(context.Background(), &dto.RegisterRequest{
		Username: username,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
}

func (e *testEnv) mustCreateSpace(t *testing.T, slug string, fields []dto.FieldDefRequest) {
	t.Helper()
	_, err := e.spaces.Create(context.Background(), &dto.CreateSpaceRequest{
		Slug:   slug,
		Title:  slug,
		Fields: fields,
	})
	require.NoError(t, err)
}

func (e *testEnv) mustCreateNote(t *testing.T, username, slug string, fields map[string]interface{}) int64 {
	t.Helper()
	res, err := e.notes.Create(context.Background(), username, slug, &dto.CreateNoteRequest{
		Fields: fields,
	})
	require.NoError(t, err)
	return res.Number
}
