package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rto-workers/internal/catalog"
	"rto-workers/internal/common/aws"
	"rto-workers/internal/common/camunda"
	"rto-workers/internal/common/config"
	"rto-workers/internal/common/database"
	"rto-workers/internal/common/logger"

	ip "rto-workers/internal/workers/catalog/index-providers"
	sms "rto-workers/internal/workers/communication/send-match-summary"
	mp "rto-workers/internal/workers/matching/match-providers"
	vqi "rto-workers/internal/workers/matching/validate-quiz-input"
)

// connections holds the optional backing services. Fields are nil when the
// configuration does not need them.
type connections struct {
	pg    *database.PostgresClient
	redis *database.RedisClient
	es    *database.ElasticsearchClient
}

func connect(ctx context.Context, cfg *config.Config, log *zap.Logger) (*connections, error) {
	c := &connections{}

	if cfg.Catalog.Source == config.CatalogSourcePostgres {
		err := retryWithBackoff(func() error {
			var err error
			c.pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return c.pg.Ping(ctx)
		}, 15, 2*time.Second, log, "PostgreSQL connection")
		if err != nil {
			return nil, err
		}
		log.Info("PostgreSQL connected successfully")
	}

	if cfg.Catalog.CacheTTL > 0 {
		c.redis = database.NewRedis(cfg.Database.Redis)
		err := retryWithBackoff(func() error {
			return c.redis.Ping(ctx)
		}, 10, 2*time.Second, log, "Redis connection")
		if err != nil {
			c.Close()
			return nil, err
		}
		log.Info("Redis connected successfully")
	}

	if config.IsWorkerEnabled(cfg, ip.TaskType) && len(cfg.Database.Elasticsearch.GetAddresses()) > 0 {
		err := retryWithBackoff(func() error {
			var err error
			c.es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return c.es.Ping(ctx)
		}, 15, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			c.Close()
			return nil, err
		}
		log.Info("Elasticsearch connected successfully")
	}

	return c, nil
}

func (c *connections) catalogDeps() catalog.Deps {
	var deps catalog.Deps
	if c.pg != nil {
		deps.Postgres = c.pg.DB
	}
	if c.redis != nil {
		deps.Redis = c.redis.Client
	}
	return deps
}

func (c *connections) Close() {
	if c.pg != nil {
		_ = c.pg.Close()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
}

func workerTimeout(cfg *config.Config, taskType string, fallback time.Duration) time.Duration {
	if ms := config.GetWorkerConfig(cfg, taskType).Timeout; ms > 0 {
		return config.GetDuration(ms)
	}
	return fallback
}

// registrations builds the handler for every worker the process can run.
// Disabled workers are still built so misconfiguration fails at startup.
func registrations(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, conns *connections, log logger.Logger) ([]camunda.Registration, error) {
	var regs []camunda.Registration

	mpCfg := mp.DefaultConfig()
	mpCfg.Timeout = workerTimeout(cfg, mp.TaskType, mpCfg.Timeout)
	mpCfg.RunnersUp = cfg.API.RunnersUp
	matchHandler, err := mp.NewHandler(mpCfg, cat, log)
	if err != nil {
		return nil, err
	}
	regs = append(regs, camunda.Registration{TaskType: mp.TaskType, Handler: matchHandler.Handle})

	vqiCfg := vqi.DefaultConfig()
	vqiCfg.Timeout = workerTimeout(cfg, vqi.TaskType, vqiCfg.Timeout)
	validateHandler, err := vqi.NewHandler(vqiCfg, log)
	if err != nil {
		return nil, err
	}
	regs = append(regs, camunda.Registration{TaskType: vqi.TaskType, Handler: validateHandler.Handle})

	if conns.es != nil {
		ipCfg := ip.DefaultConfig()
		ipCfg.IndexName = cfg.Database.Elasticsearch.IndexName
		ipCfg.Timeout = workerTimeout(cfg, ip.TaskType, ipCfg.Timeout)
		indexHandler, err := ip.NewHandler(ipCfg, conns.es.Client, cat, log)
		if err != nil {
			return nil, err
		}
		regs = append(regs, camunda.Registration{TaskType: ip.TaskType, Handler: indexHandler.Handle})
	} else {
		log.Info("index-providers not registered: no elasticsearch configured", nil)
	}

	smsHandler, err := newSummaryHandler(ctx, cfg, cat, log)
	if err != nil {
		return nil, err
	}
	regs = append(regs, camunda.Registration{TaskType: sms.TaskType, Handler: smsHandler.Handle})

	return regs, nil
}

func newSummaryHandler(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, log logger.Logger) (*sms.Handler, error) {
	ses := cfg.Integrations.AWS.SES
	sns := cfg.Integrations.AWS.SNS

	smsCfg := sms.DefaultConfig()
	smsCfg.Timeout = workerTimeout(cfg, sms.TaskType, smsCfg.Timeout)
	smsCfg.RunnersUp = cfg.API.RunnersUp
	smsCfg.EmailEnabled = ses.Enabled
	smsCfg.SMSEnabled = sns.Enabled
	if ses.FromEmail != "" {
		smsCfg.FromEmail = ses.FromEmail
	}
	smsCfg.SenderID = sns.SenderID

	deps := sms.ServiceDependencies{Catalog: cat, Logger: log}
	if ses.Enabled || sns.Enabled {
		awsCfg, err := aws.LoadConfig(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("send-match-summary: %w", err)
		}
		if ses.Enabled {
			deps.Email = aws.NewSESClient(awsCfg)
		}
		if sns.Enabled {
			deps.SMS = aws.NewSNSClient(awsCfg)
		}
	}

	return sms.NewHandler(smsCfg, deps)
}
