package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yungbote/lsbmorph-backend/internal/images"
	"github.com/yungbote/lsbmorph-backend/internal/platform/gcp"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

// Clients are the optional external backends. Each falls back to an
// in-process stand-in when unconfigured.
type Clients struct {
	CountCache services.CountCache
	Mirror     images.Mirror

	closers []io.Closer
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Redis
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		cache, err := services.NewRedisCountCache(log, cfg.RedisAddr, cfg.CountCacheTTL)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis count cache: %w", err)
		}
		out.CountCache = cache
		if c, ok := cache.(io.Closer); ok {
			out.closers = append(out.closers, c)
		}
	} else {
		out.CountCache = services.NewNoopCountCache()
	}

	// Gcs
	if strings.TrimSpace(cfg.ImagesBucket) != "" {
		scfg, err := gcp.StorageConfigFromEnv(cfg.ImagesBucket)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("image bucket config: %w", err)
		}
		bucket, err := gcp.NewImageBucket(ctx, log, scfg)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init image bucket: %w", err)
		}
		out.Mirror = images.NewBucketMirror(bucket)
		out.closers = append(out.closers, bucket)
	}

	return out, nil
}

func (c Clients) Close() {
	for _, cl := range c.closers {
		_ = cl.Close()
	}
}
