package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stewartburton/brainblitz/internal/app"
	"github.com/stewartburton/brainblitz/internal/config"
	"github.com/stewartburton/brainblitz/internal/domain"
	"github.com/stewartburton/brainblitz/internal/infra/memory"
	pgstore "github.com/stewartburton/brainblitz/internal/infra/postgres"
	redisstore "github.com/stewartburton/brainblitz/internal/infra/redis"
	transport "github.com/stewartburton/brainblitz/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(sampleCatalog())
	var results app.ResultStore = memory.NewResultStore()
	if pool != nil {
		loader = pgstore.NewQuestionLoader(pool)
		results = pgstore.NewResultStore(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	catalog := memory.NewQuestionCatalog(loader, catalogTTL)

	var board app.Leaderboard = memory.NewLeaderboard()
	var daily app.DailyStore = memory.NewDailyStore()
	if redisClient != nil {
		board = redisstore.NewLeaderboard(redisClient)
		daily = redisstore.NewDailyStore(redisClient)
	}

	sessions := memory.NewSessionStore()
	stats := memory.NewStatsStore()
	service := app.NewGameService(catalog, sessions, results, board, stats, daily, logger)

	wsHandler := transport.NewWSHandler(service, logger)
	restHandler := transport.NewRESTHandler(service, logger)

	mux := http.NewServeMux()
	restHandler.Register(mux)
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info().Str("port", finalPort).Msg("starting trivia service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info().Msg("shutting down server...")
	case <-ctx.Done():
		logger.Info().Msg("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleCatalog provides a minimal question set so the service runs without
// a database; swap the loader for the Postgres-backed one in production.
func sampleCatalog() []domain.Question {
	return []domain.Question{
		{
			ID:               "q-sci-1",
			Category:         domain.CategoryScience,
			Difficulty:       domain.DifficultyEasy,
			Question:         "What planet is known as the Red Planet?",
			CorrectAnswer:    "Mars",
			IncorrectAnswers: []string{"Venus", "Jupiter", "Mercury"},
			FunFact:          "Mars gets its color from iron oxide dust.",
		},
		{
			ID:               "q-geo-1",
			Category:         domain.CategoryGeography,
			Difficulty:       domain.DifficultyEasy,
			Question:         "Which is the largest ocean on Earth?",
			CorrectAnswer:    "Pacific Ocean",
			IncorrectAnswers: []string{"Atlantic Ocean", "Indian Ocean"},
		},
		{
			ID:               "q-his-1",
			Category:         domain.CategoryHistory,
			Difficulty:       domain.DifficultyMedium,
			Question:         "In which year did the Berlin Wall fall?",
			CorrectAnswer:    "1989",
			IncorrectAnswers: []string{"1987", "1991", "1993"},
		},
		{
			ID:               "q-tec-1",
			Category:         domain.CategoryTechnology,
			Difficulty:       domain.DifficultyMedium,
			Question:         "What does CPU stand for?",
			CorrectAnswer:    "Central Processing Unit",
			IncorrectAnswers: []string{"Computer Processing Unit", "Central Program Unit"},
		},
		{
			ID:               "q-lit-1",
			Category:         domain.CategoryLiterature,
			Difficulty:       domain.DifficultyHard,
			Question:         "Who wrote the novel 'One Hundred Years of Solitude'?",
			CorrectAnswer:    "Gabriel García Márquez",
			IncorrectAnswers: []string{"Jorge Luis Borges", "Mario Vargas Llosa", "Pablo Neruda"},
		},
		{
			ID:               "q-myt-1",
			Category:         domain.CategoryMythology,
			Difficulty:       domain.DifficultyHard,
			Question:         "In Norse mythology, what is the name of Odin's eight-legged horse?",
			CorrectAnswer:    "Sleipnir",
			IncorrectAnswers: []string{"Fenrir", "Gullfaxi"},
		},
	}
}
