package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"placement-prep/internal/config"
	"placement-prep/internal/database"
	dbpostgres "placement-prep/internal/database/postgres"
	"placement-prep/internal/infrastructure/cache"
	"placement-prep/internal/infrastructure/chatbot"
	"placement-prep/internal/infrastructure/judge"
	"placement-prep/internal/infrastructure/mailer"
	"placement-prep/internal/infrastructure/queue"
	"placement-prep/internal/infrastructure/storage"
	"placement-prep/internal/ws"

	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Container owns every long-lived dependency. Optional integrations stay nil when unconfigured.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB      database.DB
	Cache   *cache.Redis
	Judge   judge.Client
	Chatbot chatbot.Chatbot
	Hub     *ws.Hub

	Mailer    *mailer.SMTPMailer
	Publisher *queue.Publisher
	Archive   *storage.Archive
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}

	dbCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	db, err := dbpostgres.Connect(dbCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	bot, err := chatbot.New(ctx, cfg.Chatbot, logger)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("chatbot: %w", err)
	}
	c.Chatbot = bot

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Judge = judge.NewJudge0Client(cfg.Judge, logger)
	c.Hub = ws.NewHub(logger)

	if cfg.Mail.Enabled() {
		c.Mailer = mailer.NewSMTPMailer(cfg.Mail)
	}
	if cfg.Queue.Enabled() {
		pub, err := queue.NewPublisher(cfg.Queue)
		if err != nil {
			logger.Warn("booking queue disabled", zap.Error(err))
		} else {
			c.Publisher = pub
		}
	}
	if cfg.Storage.Enabled() {
		archive, err := storage.NewArchive(ctx, cfg.Storage)
		if err != nil {
			logger.Warn("resume archive disabled", zap.Error(err))
		} else {
			c.Archive = archive
		}
	}

	logger.Info("container ready",
		zap.Bool("mail", c.Mailer != nil),
		zap.Bool("queue", c.Publisher != nil),
		zap.Bool("storage", c.Archive != nil),
		zap.String("chatbot", cfg.Chatbot.Provider),
	)
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Publisher != nil {
		errs = append(errs, c.Publisher.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
