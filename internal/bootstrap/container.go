package bootstrap

import (
	"context"
	"log"
	"time"

	"spacenotes-be/internal/config"
	"spacenotes-be/internal/controller"
	"spacenotes-be/internal/pkg/logger"
	"spacenotes-be/internal/repository/unitofwork"
	"spacenotes-be/internal/service"

	pktNats "spacenotes-be/pkg/nats"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	UserController       controller.IUserController
	SpaceController      controller.ISpaceController
	NoteController       controller.INoteController
	AttachmentController controller.IAttachmentController

	// Exposed for middleware wiring and main.go shutdown
	AuthService service.IAuthService
	Logger      logger.ILogger
	Cron        *cron.Cron
	NatsPub     *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	sessionTTL := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour
	sessionCache := service.NewSessionCache(time.Minute)
	guard := service.NewIntegrityGuard()

	// 3. Services
	renameService := service.NewRenameService(uowFactory, sessionCache, sysLogger, natsPub)
	authService := service.NewAuthService(uowFactory, sessionCache, sessionTTL, sysLogger)
	userService := service.NewUserService(uowFactory, renameService, guard, sessionCache, sysLogger, natsPub)
	spaceService := service.NewSpaceService(uowFactory, renameService, sysLogger, natsPub)
	noteService := service.NewNoteService(uowFactory, sysLogger, natsPub)
	attachmentService := service.NewAttachmentService(uowFactory, guard, sysLogger, natsPub)

	// 4. Background jobs
	c := cron.New()
	if _, err := c.AddFunc(cfg.Auth.SessionPurgeSchedule, func() {
		purged, err := authService.PurgeExpiredSessions(context.Background())
		if err != nil {
			sysLogger.Error("auth", "session purge failed", map[string]interface{}{"error": err.Error()})
			return
		}
		if purged > 0 {
			sysLogger.Info("auth", "purged expired sessions", map[string]interface{}{"count": purged})
		}
	}); err != nil {
		log.Printf("[WARN] Failed to schedule session purge: %v", err)
	}

	return &Container{
		AuthController:       controller.NewAuthController(authService),
		UserController:       controller.NewUserController(userService),
		SpaceController:      controller.NewSpaceController(spaceService),
		NoteController:       controller.NewNoteController(noteService),
		AttachmentController: controller.NewAttachmentController(attachmentService),

		AuthService: authService,
		Logger:      sysLogger,
		Cron:        c,
		NatsPub:     natsPub,
	}
}
