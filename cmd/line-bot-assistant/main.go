// Command line-bot-assistant runs the LINE personal-assistant bot: a webhook
// server that maintains per-user conversation flows and persists records to
// flat JSON files.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ymguan3-boop/line-bot-assistant/internal/api"
	"github.com/ymguan3-boop/line-bot-assistant/internal/flow"
	"github.com/ymguan3-boop/line-bot-assistant/internal/mailer"
	"github.com/ymguan3-boop/line-bot-assistant/internal/messaging"
	"github.com/ymguan3-boop/line-bot-assistant/internal/store"
)

// Default configuration constants
const (
	// DefaultDataDir is the default directory for collection files.
	DefaultDataDir = "data"
	// DefaultAttachmentsDir is the default directory for saved attachments.
	DefaultAttachmentsDir = "attachments"
	// DefaultPort is the default listen port.
	DefaultPort = "3000"
	// DefaultSMTPHost is the default SMTP relay.
	DefaultSMTPHost = "smtp.gmail.com"
	// DefaultSMTPPort is the default SMTP port.
	DefaultSMTPPort = 587
)

// Config holds environment configuration.
type Config struct {
	ChannelSecret string
	ChannelToken  string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	DataDir       string
	Port          string
}

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()

	dataDir := flag.String("data-dir", config.DataDir, "directory for collection files and attachments")
	port := flag.String("port", config.Port, "HTTP listen port")
	flag.Parse()

	if config.ChannelSecret == "" || config.ChannelToken == "" {
		slog.Error("LINE_CHANNEL_SECRET and LINE_CHANNEL_ACCESS_TOKEN are required")
		os.Exit(1)
	}

	st, err := store.NewFileStore(*dataDir, filepath.Join(*dataDir, DefaultAttachmentsDir))
	if err != nil {
		slog.Error("Failed to initialize file store", "error", err)
		os.Exit(1)
	}

	gateway, err := messaging.NewLineGateway(config.ChannelToken)
	if err != nil {
		slog.Error("Failed to create LINE gateway", "error", err)
		os.Exit(1)
	}

	var m mailer.Mailer
	if config.SMTPUser != "" {
		m = mailer.NewService(mailer.SMTPConfig{
			Host: config.SMTPHost,
			Port: config.SMTPPort,
			User: config.SMTPUser,
			Pass: config.SMTPPass,
		}, st)
	} else {
		slog.Warn("SMTP_USER not set, email export disabled")
	}

	controller := flow.NewController(flow.NewStateStore(), st, m)
	server := api.NewServer(gateway, st, controller, config.ChannelSecret)

	slog.Info("Bootstrapping LINE bot assistant", "data_dir", *dataDir, "port", *port)
	if err := server.Run(":" + *port); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

// initializeLogger sets up structured logging.
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and an
// optional .env file.
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		ChannelSecret: os.Getenv("LINE_CHANNEL_SECRET"),
		ChannelToken:  os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		DataDir:       os.Getenv("DATA_DIR"),
		Port:          os.Getenv("PORT"),
	}

	config.SMTPPort = DefaultSMTPPort
	if v := os.Getenv("SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("Invalid SMTP_PORT, using default", "value", v, "default", DefaultSMTPPort)
		} else {
			config.SMTPPort = p
		}
	}
	if config.SMTPHost == "" {
		config.SMTPHost = DefaultSMTPHost
	}
	if config.DataDir == "" {
		config.DataDir = DefaultDataDir
	}
	if config.Port == "" {
		config.Port = DefaultPort
	}
	return config
}
