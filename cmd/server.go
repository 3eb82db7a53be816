package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/errx"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate/candidateapi"
	"github.com/Abraxas-365/skillbridge/recruitment/interview/interviewapi"
	"github.com/Abraxas-365/skillbridge/recruitment/job/jobapi"
	"github.com/Abraxas-365/skillbridge/recruitment/job/scheduler"
	"github.com/Abraxas-365/skillbridge/recruitment/job/worker"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var noScheduler bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the ingestion worker and the daily scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), !noScheduler)
		},
	}
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "do not trigger scheduled ingestion from this instance")
	return cmd
}

func runServer(parent context.Context, withScheduler bool) error {
	// 1. Configuration and Logger
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logx.Info("Starting SkillBridge API Server...")

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Dependency Container
	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.initAuth(ctx); err != nil {
		return err
	}

	// 3. Create Fiber App with Config
	app := newApp(container)

	// 4. Background ingestion
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	workerDone := worker.NewIngestionWorker(container.IngestionService, container.Queue).Start(workerCtx)

	var sched *scheduler.Scheduler
	if withScheduler {
		sched, err = scheduler.New(cfg.Ingest.Cron, container.Dispatcher)
		if err != nil {
			return err
		}
		sched.Start()
		logx.Infof("Next scheduled ingestion at %s", sched.Next().Format(time.RFC3339))
	}

	// 5. Start Server with Graceful Shutdown
	serverErr := make(chan error, 1)
	go func() {
		logx.Infof("Server listening on port %s", cfg.Server.Port)
		serverErr <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case <-ctx.Done():
		logx.Info("Shutting down server...")
	case err := <-serverErr:
		if err != nil {
			logx.Errorf("Server error: %v", err)
		}
	}

	if sched != nil {
		sched.Stop()
	}
	stopWorker()
	<-workerDone

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
	return nil
}

func newApp(container *Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "SkillBridge API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             candidate.MaxResumeBytes + 1<<20,
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: container.Config.Server.Origins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		checks := container.Health(c.UserContext())
		status := "ok"
		for _, ok := range checks {
			if !ok {
				status = "degraded"
			}
		}
		return c.JSON(fiber.Map{
			"status": status,
			"db":     checks["db"],
			"redis":  checks["redis"],
			"vector": checks["vector"],
		})
	})

	// Locally stored uploads
	if container.Config.AWS.Bucket == "" {
		app.Static("/files", container.Config.AWS.LocalDir)
	}

	// Routes
	// /api/auth/sync, /api/me, /api/skills, /api/parse-resume
	candidateapi.RegisterRoutes(app, container.CandidateHandlers, container.AuthMiddleware)

	// /api/jobs
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)

	// /api/interview/questions
	interviewapi.RegisterRoutes(app, container.InterviewHandlers, container.AuthMiddleware)

	return app
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	// If it's our custom errx.Error
	var xe *errx.Error
	if errors.As(err, &xe) {
		if xe.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("Request failed: %s %s: %v", c.Method(), c.Path(), xe)
		}
		return c.Status(xe.HTTPStatus).JSON(xe.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
