package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/mosaic/internal/config"
	"github.com/alexanderramin/mosaic/internal/db"
	mcptools "github.com/alexanderramin/mosaic/internal/mcp"
	"github.com/alexanderramin/mosaic/internal/notify"
	"github.com/alexanderramin/mosaic/internal/query"
	"github.com/alexanderramin/mosaic/internal/repository"
	"github.com/alexanderramin/mosaic/internal/scheduler"
	"github.com/alexanderramin/mosaic/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dbPath   string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "mosaic",
		Short: "Personal work-memory MCP server",
		Long: `Mosaic keeps a single person's work memory in SQLite and serves it to
an MCP client over stdio: projects, clients, people, meetings, work
sessions, notes, reminders, action items and bookmarks.

Configuration comes from MOSAIC_* environment variables; flags override
the matching variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Flags win over the environment so `mosaic --db x.db`
			// works without exporting anything.
			if dbPath != "" {
				os.Setenv("MOSAIC_DB", dbPath)
			}
			if logLevel != "" {
				os.Setenv("MOSAIC_LOG_LEVEL", logLevel)
			}
			return run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (MOSAIC_DB)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "trace|debug|info|warn|error (MOSAIC_LOG_LEVEL)")
	return cmd
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	sessionRepo := repository.NewSQLiteWorkSessionRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	meetingRepo := repository.NewSQLiteMeetingRepo(database)
	personRepo := repository.NewSQLitePersonRepo(database)
	clientRepo := repository.NewSQLiteClientRepo(database)
	employerRepo := repository.NewSQLiteEmployerRepo(database)
	employmentRepo := repository.NewSQLiteEmploymentRepo(database)
	noteRepo := repository.NewSQLiteNoteRepo(database)
	reminderRepo := repository.NewSQLiteReminderRepo(database)
	actionRepo := repository.NewSQLiteActionItemRepo(database)
	bookmarkRepo := repository.NewSQLiteBookmarkRepo(database)
	queryRepo := repository.NewSQLiteQueryRepo(database)

	observer := service.NewLogUseCaseObserver(logger)
	profileSvc := service.NewUserService(userRepo, service.ProfileDefaults{
		Timezone:       cfg.Timezone,
		WeekBoundary:   cfg.WeekBoundary,
		DefaultPrivacy: cfg.DefaultPrivacy,
	})

	dispatcher := notify.NewHTTPDispatcher(notify.Config{
		BridgeURL:    cfg.BridgeURL,
		Enabled:      cfg.NotifyEnabled,
		DefaultSound: cfg.NotifySound,
	}, logger)
	defer dispatcher.Close()

	srv := mcptools.New(mcptools.Deps{
		Sessions:  service.NewWorkSessionService(sessionRepo, projectRepo, profileSvc, uow, observer),
		Meetings:  service.NewMeetingService(meetingRepo, profileSvc, uow, observer),
		Reminders: service.NewReminderService(reminderRepo, profileSvc, uow, observer),
		Directory: service.NewDirectoryService(personRepo, clientRepo, employerRepo, projectRepo, employmentRepo, uow),
		Notes:     service.NewNoteService(noteRepo, profileSvc),
		Tasks:     service.NewTaskService(actionRepo, bookmarkRepo, profileSvc),
		Profile:   profileSvc,
		Queries:   service.NewQueryService(query.NewExecutor(queryRepo), profileSvc, observer),
		Notifier:  dispatcher,
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(reminderRepo, dispatcher, cfg.SchedulerInterval, logger)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// stdout belongs to the protocol; everything else goes to stderr.
	stdio := server.NewStdioServer(srv)
	stdio.SetErrorLogger(stdlog.New(logger, "", 0))

	logger.Info().Str("db", cfg.DBPath).Msg("mosaic serving MCP on stdio")
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serving stdio: %w", err)
	}
	logger.Info().Msg("mosaic shut down")
	return nil
}

// newLogger builds the process logger on stderr: human-readable on a
// terminal, JSON lines otherwise.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
