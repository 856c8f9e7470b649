package cli

import (
	"context"
	"fmt"

	"github.com/wyfcoding/storefront/internal/storefront/application"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
	"github.com/wyfcoding/storefront/internal/storefront/infrastructure/client"
	"github.com/wyfcoding/storefront/internal/storefront/infrastructure/persistence/file"
	"github.com/wyfcoding/storefront/internal/storefront/infrastructure/persistence/memory"
	kvredis "github.com/wyfcoding/storefront/internal/storefront/infrastructure/persistence/redis"
	"github.com/wyfcoding/storefront/pkg/cache"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/logging"
)

// Runtime 一次命令执行所需的依赖
type Runtime struct {
	Config  *config.ClientConfig
	Session *application.Session
	closers []func() error
}

// Close 释放资源
func (r *Runtime) Close() error {
	var firstErr error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Bootstrap 根据配置文件构建 Runtime
type Bootstrap func(ctx context.Context, configPath string) (*Runtime, error)

// DefaultBootstrap 加载配置、初始化日志、本地存储与后端客户端
func DefaultBootstrap(ctx context.Context, configPath string) (*Runtime, error) {
	// 1. 加载配置
	cfg, err := config.LoadClient(configPath)
	if err != nil {
		return nil, err
	}

	// 2. 初始化日志
	if err := logging.Init(cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	rt := &Runtime{Config: cfg}

	// 3. 本地键值存储
	kv, err := newKVStore(ctx, cfg, rt)
	if err != nil {
		return nil, err
	}

	// 4. 后端客户端与目录来源
	var api application.RemoteAPI
	var catalog application.CatalogSource
	switch cfg.Catalog.Source {
	case "static":
		catalog = application.NewStaticCatalog(nil)
		if cfg.API.BaseURL != "" {
			api = client.New(cfg.API)
		}
	default:
		c := client.New(cfg.API)
		api = c
		catalog = application.NewRemoteCatalog(c)
	}

	rt.Session = application.NewSession(application.SessionDeps{Catalog: catalog, KV: kv, API: api})
	logging.Info(ctx, "storefront runtime ready",
		"catalog", cfg.Catalog.Source, "storage", cfg.Storage.Driver, "api", cfg.API.BaseURL)
	return rt, nil
}

func newKVStore(ctx context.Context, cfg *config.ClientConfig, rt *Runtime) (domain.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case "redis":
		rc, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		rt.closers = append(rt.closers, rc.Close)
		return kvredis.NewKVStore(rc, cfg.Storage.KeyPrefix), nil
	case "memory":
		return memory.NewKVStore(), nil
	default:
		return file.NewKVStore(cfg.Storage.Path)
	}
}
