package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seaward/blobtree/internal/config"
	"github.com/seaward/blobtree/internal/observability"
	"github.com/seaward/blobtree/pkg/assets"
	"github.com/seaward/blobtree/pkg/blobstore"
	"github.com/seaward/blobtree/pkg/blobstore/azure"
	"github.com/seaward/blobtree/pkg/blobstore/memory"
	"github.com/seaward/blobtree/pkg/blobstore/s3"
	"github.com/seaward/blobtree/pkg/events"
	"github.com/seaward/blobtree/pkg/policy"
)

// runtime bundles everything a command needs: config, logger, store and
// the provider on top.
type runtime struct {
	cfg      *config.Config
	log      *zap.Logger
	store    blobstore.Store
	provider *assets.Provider
}

func newRuntime(ctx context.Context, console bool) (*runtime, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	log, err := observability.NewLogger(level, console)
	if err != nil {
		return nil, err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	checker, err := newChecker(cfg.Policy)
	if err != nil {
		return nil, err
	}

	provider, err := assets.New(store, assets.Config{
		BaseURL:               cfg.BaseURL,
		CDNHost:               cfg.CDNHost,
		ContainerAccess:       blobstore.PublicAccess(cfg.ContainerAccess),
		CacheControl:          cfg.CacheControl,
		TransferConcurrency:   cfg.Transfer.Concurrency,
		TransferRatePerSecond: cfg.Transfer.RatePerSecond,
	},
		assets.WithPolicy(checker),
		assets.WithEvents(events.NewLogPublisher(log)),
		assets.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, log: log, store: store, provider: provider}, nil
}

func (rt *runtime) Close() {
	if err := rt.store.Close(); err != nil {
		rt.log.Warn("closing store", zap.Error(err))
	}
	_ = rt.log.Sync()
}

func newStore(ctx context.Context, cfg *config.Config) (blobstore.Store, error) {
	switch cfg.Backend {
	case "azure":
		return azure.New(azure.Config{
			Account:    cfg.Azure.Account,
			AccountKey: cfg.Azure.AccountKey,
			SASToken:   cfg.Azure.SASToken,
			Endpoint:   cfg.Azure.Endpoint,
			Prefix:     cfg.Prefix,
		})
	case "s3":
		return s3.New(ctx, s3.Config{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			Profile:         cfg.S3.Profile,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			ForcePathStyle:  cfg.S3.ForcePathStyle,
			Prefix:          cfg.Prefix,
		})
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func newChecker(cfg config.PolicyConfig) (policy.Checker, error) {
	if cfg.RulesFile != "" {
		return policy.LoadRules(cfg.RulesFile)
	}
	if len(cfg.Allow) == 0 && len(cfg.Deny) == 0 {
		return policy.AllowAll{}, nil
	}
	return policy.New(cfg.Allow, cfg.Deny)
}
