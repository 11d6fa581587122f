package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/preplock/internal/cli"
	"github.com/alexanderramin/preplock/internal/config"
	"github.com/alexanderramin/preplock/internal/content"
	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/llm"
	"github.com/alexanderramin/preplock/internal/lock"
	"github.com/alexanderramin/preplock/internal/logger"
	"github.com/alexanderramin/preplock/internal/repository"
	"github.com/alexanderramin/preplock/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if cfg.LogMode == "prod" || cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Piped output stays free of escape codes.
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sourceRepo := repository.NewSQLiteSourceRepo(database)
	roadmapRepo := repository.NewSQLiteRoadmapRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	deckRepo := repository.NewSQLiteDeckRepo(database)
	mockTestRepo := repository.NewSQLiteMockTestRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisEnabled() {
		client := lock.NewRedisClient(cfg.Redis)
		defer client.Close()
		locker = lock.NewRedis(client, cfg.LockTTL)
	}

	generator := content.NewTemplateGenerator()
	if cfg.LLM.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(log)
		}
		llmClient := llm.NewOllamaClient(cfg.LLM, observer)
		generator = content.WithFallback(content.NewLLMGenerator(llmClient), generator, log)
	}

	// Wire services
	observer := service.NewLogUseCaseObserver(log)
	taskSvc := service.NewTaskService(roadmapRepo, taskRepo, observer)

	app := &cli.App{
		Sources:     service.NewSourceService(sourceRepo, uow, observer),
		Roadmaps:    service.NewRoadmapService(sourceRepo, roadmapRepo, taskSvc, uow, cfg.WindowDays, observer),
		Completion:  service.NewCompletionService(uow, taskRepo, locker, log, observer),
		Tasks:       taskSvc,
		Content:     service.NewContentService(sourceRepo, roadmapRepo, taskRepo, generator, observer),
		Study:       service.NewStudyService(uow, sourceRepo, deckRepo, mockTestRepo, generator, observer),
		Logger:      log,
		DefaultUser: cfg.User,
		HTTPAddr:    cfg.HTTPAddr,
	}

	return cli.NewRootCmd(app).Execute()
}
