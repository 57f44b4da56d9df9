package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"fairway-app/internal/scoring"
	"fairway-app/internal/store"
	"fairway-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		_ = godotenv.Load(".env", ".env.local")
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var appStore store.Store
	if dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN")); dsn != "" {
		pgStore, err := store.NewPostgresStore(dsn, store.PostgresOptions{
			MigrationsDir: os.Getenv("POSTGRES_MIGRATIONS_DIR"),
		})
		if err != nil {
			log.Fatalf("postgres store: %v", err)
		}
		appStore = pgStore
	} else if dbPath := strings.TrimSpace(os.Getenv("DB_PATH")); dbPath != "" {
		sqliteStore, err := store.NewSQLiteStore(dbPath, store.SQLiteOptions{
			MigrationsDir: os.Getenv("DB_MIGRATIONS_DIR"),
		})
		if err != nil {
			log.Fatalf("sqlite store: %v", err)
		}
		appStore = sqliteStore
	} else {
		appStore = store.NewMemoryStore()
	}

	service := scoring.NewService(appStore, logger)
	server := web.NewServer(appStore, service, logger)

	r := chi.NewRouter()
	r.Mount("/", server.Routes())

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		logger.Info("starting in lambda mode")
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
	} else {
		addr := strings.TrimSpace(os.Getenv("ADDR"))
		if addr == "" {
			addr = ":8080"
		}
		logger.Info("listening", "addr", addr)
		if err := http.ListenAndServe(addr, r); err != nil {
			log.Fatalf("server: %v", err)
		}
	}
}
