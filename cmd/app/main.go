package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/sushihentaime/blogplatform/internal/blogservice"
	"github.com/sushihentaime/blogplatform/internal/common"
	"github.com/sushihentaime/blogplatform/internal/mailservice"
	"github.com/sushihentaime/blogplatform/internal/postservice"
	"github.com/sushihentaime/blogplatform/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	blogService *blogservice.BlogService
	postService *postservice.PostService
	userService *userservice.UserService
	mailService *mailservice.MailService
	broker      *common.MessageBroker
	limiter     *clientLimiter
}

func newLogger(environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func main() {
	configPath := flag.String("config", ".env", "path to the dotenv configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.Environment)

	uri := common.PostgresURI(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	if cfg.MigrationsPath != "" {
		m, err := common.Migrate("file://"+cfg.MigrationsPath, uri)
		if err != nil {
			logger.Error("failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		m.Close()
	}

	db, err := common.NewDB(uri, common.DBOptions{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		MaxIdleTime:  cfg.DBMaxIdleTime,
	})
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	cache := common.NewCache(cfg.CacheTTL, 2*cfg.CacheTTL)

	app := &application{
		config: cfg,
		logger: logger,
	}

	var producer common.MessageProducer
	if cfg.MQEnabled {
		broker, err := common.NewMessageBroker(common.AMQPURI(cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort))
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		if err := common.SetupUserExchange(broker); err != nil {
			logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
			os.Exit(1)
		}

		app.broker = broker
		app.mailService = mailservice.NewMailService(broker, mailservice.SMTPConfig{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			Username: cfg.MailUser,
			Password: cfg.MailPassword,
			Sender:   cfg.MailSender,
		}, logger)
		defer app.mailService.Close()

		if err := app.mailService.SendWelcomeEmails(); err != nil {
			logger.Error("failed to start the welcome mail consumer", slog.String("error", err.Error()))
			os.Exit(1)
		}

		producer = broker
	}

	app.blogService = blogservice.NewBlogService(db, cache)
	app.postService = postservice.NewPostService(db, cache, app.blogService)
	app.userService = userservice.NewUserService(db, userservice.NewBcryptHasher(cfg.BcryptCost), producer, logger)

	err = app.serve(":" + cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
