package main

import (
	"context"
	"errors"
	"fmt"
	common_api "go-chat/internal/common/api"
	"go-chat/internal/config"
	"go-chat/internal/database"
	"go-chat/internal/features/admin"
	"go-chat/internal/features/auth"
	"go-chat/internal/features/channel"
	"go-chat/internal/features/group"
	"go-chat/internal/features/grouprequest"
	"go-chat/internal/features/message"
	"go-chat/internal/features/signaling"
	"go-chat/internal/features/system"
	"go-chat/internal/features/user"
	"go-chat/internal/logger"
	"go-chat/internal/middleware"
	"go-chat/internal/scheduler"
	"go-chat/pkg/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(common_api.Response{
				Success: false,
				Message: err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// userFinderAdapter narrows the user repository to the existence check the
// group feature depends on.
type userFinderAdapter struct {
	repo user.UserRepository
}

func (a *userFinderAdapter) UserExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, err := a.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Database
			database.NewDatabase,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Repository
			user.NewUserRepository,
			group.NewGroupRepository,
			channel.NewChannelRepository,
			message.NewMessageRepository,
			grouprequest.NewGroupRequestRepository,

			// Initialize Service
			user.NewUserService,
			auth.NewAuthService,
			group.NewGroupService,
			channel.NewChannelService,
			message.NewMessageService,
			grouprequest.NewGroupRequestService,
			admin.NewAdminService,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(r user.UserRepository) group.UserFinder {
				return &userFinderAdapter{repo: r}
			},

			// Initialize Controller
			user.NewUserController,
			auth.NewAuthController,
			group.NewGroupController,
			channel.NewChannelController,
			message.NewMessageController,
			grouprequest.NewGroupRequestController,
			admin.NewAdminController,
			signaling.NewHub,
			signaling.NewSignalingController,

			// Background jobs
			scheduler.NewScheduler,

			// Initialize API Routes
			AsRoute(system.NewHealthApi),
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(group.NewGroupApi),
			AsRoute(channel.NewChannelApi),
			AsRoute(message.NewMessageApi),
			AsRoute(grouprequest.NewGroupRequestApi),
			AsRoute(admin.NewAdminApi),
			AsRoute(signaling.NewSignalingApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Token signing key must be set before any route handles a request
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, sched *scheduler.Scheduler) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return sched.Start()
					},
					OnStop: func(ctx context.Context) error {
						sched.Stop()
						return nil
					},
				})
			},
		),
	)

	app.Run()
}
