package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rpupo63/solar-ops-backend/api"
	"github.com/rpupo63/solar-ops-backend/config"
	"github.com/rpupo63/solar-ops-backend/database"
	"github.com/rpupo63/solar-ops-backend/models"
	"github.com/rpupo63/solar-ops-backend/services"
	"gorm.io/gorm"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	config.Load()
	c := config.New()

	ctx := context.Background()

	if path := config.GetString(c, "SSM_PATH", ""); path != "" {
		client, err := config.NewSSMClient(ctx, config.GetString(c, "AWS_REGION", ""))
		if err != nil {
			fmt.Printf("Error creating SSM client: %v\n", err)
			os.Exit(1)
		}
		if _, err := config.MergeSSM(ctx, client, path, c); err != nil {
			fmt.Printf("Error reading SSM parameters: %v\n", err)
			os.Exit(1)
		}
	}

	dbType := config.GetString(c, "DB_TYPE", "memory")
	fmt.Printf("DB_TYPE: %s\n", dbType)

	var connStr string
	switch dbType {
	case "supa":
		connStr = database.SupabaseDSN(
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
		fmt.Println("Connecting to Supabase database...")
	case "postgres":
		connStr = config.GetString(c, "DATABASE_URL", "")
		fmt.Println("Connecting to PostgreSQL database...")
	case "memory":
		fmt.Println("Using in-memory database...")
	default:
		fmt.Println("Unsupported DB_TYPE. Exiting...")
		os.Exit(1)
	}

	var currentDB database.Database
	if connStr == "" && dbType != "memory" {
		fmt.Println("Missing database connection settings. Exiting...")
		os.Exit(1)
	}
	if dbType == "memory" {
		currentDB = database.NewMemory()
	} else {
		db, err := database.Open(database.Options{
			DSN:           connStr,
			ReplicaDSN:    config.GetString(c, "DB_REPLICA_DSN", ""),
			SlowThreshold: config.GetDuration(c, "DB_SLOW_THRESHOLD", 10*time.Second),
			MaxOpenConns:  config.GetInt(c, "DB_MAX_OPEN_CONNS", 0),
		})
		if err != nil {
			fmt.Printf("Error connecting to database: %v\n", err)
			os.Exit(1)
		}

		if runGenerators(c, db) {
			return
		}
		currentDB = database.New(db)
	}

	if err := currentDB.Migrate(ctx); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	deps, err := buildDependencies(ctx, c, currentDB)
	if err != nil {
		fmt.Printf("Error initializing services: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(c, deps)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// runGenerators handles the one-shot GENERATE_MODELS and GENERATE_COLUMN_REPORT
// modes. It reports whether one of them ran.
func runGenerators(c map[string]string, db *gorm.DB) bool {
	if strings.ToLower(config.GetString(c, "GENERATE_MODELS", "")) == "true" {
		fmt.Println("Generating models and query helpers...")
		if err := models.GenerateModels(db, config.GetString(c, "GENERATE_OUT_PATH", "./generated")); err != nil {
			fmt.Printf("Error generating models: %v\n", err)
			os.Exit(1)
		}
		return true
	}

	if config.GetString(c, "GENERATE_COLUMN_REPORT", "") == "true" {
		fmt.Println("Generating column mismatch report...")
		report, err := models.ColumnReport(db)
		if err != nil {
			fmt.Printf("Error generating column report: %v\n", err)
			os.Exit(1)
		}
		models.PrintColumnReport(report)
		return true
	}
	return false
}

func buildDependencies(ctx context.Context, c map[string]string, db database.Database) (api.Dependencies, error) {
	deps := api.Dependencies{
		Database:    db,
		Remote:      services.NewClient(config.GetString(c, "REMOTE_API_URL", ""), nil),
		Submissions: services.NewSubmissions(config.GetDuration(c, "SUBMISSION_RETENTION", 10*time.Minute)),
		Notifier: services.NewNotifier(services.NotifierConfig{
			APIKey:       config.GetString(c, "RESEND_API_KEY", ""),
			From:         config.GetString(c, "RESEND_FROM_EMAIL", ""),
			Recipients:   config.GetList(c, "NOTIFY_RECIPIENTS", nil),
			DashboardURL: config.GetString(c, "DASHBOARD_URL", ""),
		}),
	}

	if bucket := config.GetString(c, "ARCHIVE_BUCKET", ""); bucket != "" {
		client, err := services.NewS3Client(ctx, config.GetString(c, "AWS_REGION", ""))
		if err != nil {
			return deps, fmt.Errorf("create s3 client: %w", err)
		}
		deps.Archiver = services.NewArchiver(client, bucket, config.GetString(c, "ARCHIVE_PREFIX", "submissions"))
	}

	if !deps.Remote.Configured() {
		fmt.Println("REMOTE_API_URL is not set, sites and users will be unavailable")
	}
	return deps, nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
