package main

import (
	"context"
	"fmt"
	"strings"

	"tiktok-planner/domain/repository"
	"tiktok-planner/infrastructure/cache"
	"tiktok-planner/infrastructure/configuration"
	"tiktok-planner/infrastructure/filestore"
	"tiktok-planner/infrastructure/persistence"

	"github.com/spf13/afero"
)

// newBlobStore builds the queue backend named by queue.backend. The returned
// closer releases any connection it opened.
func newBlobStore(ctx context.Context, c configuration.Config, fs afero.Fs) (repository.IBlobStore, func(), error) {
	noop := func() {}
	switch strings.ToLower(c.Queue.Backend) {
	case "", "file":
		return filestore.NewFileBlobStore(fs, c.Queue.FilePath, c.Queue.Key), noop, nil
	case "memory":
		return filestore.NewMemoryBlobStore(), noop, nil
	case "redis":
		client, err := cache.NewCache(
			ctx,
			fmt.Sprintf("%s:%s", c.RedisClient.Host, c.RedisClient.Port),
			c.RedisClient.Username,
			c.RedisClient.Password,
			c.RedisClient.DB,
		)
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		return cache.NewRedisBlobStore(client, ""), func() { _ = client.Close() }, nil
	case "postgres", "psql":
		db, err := persistence.NewPostgreSQLDB(c.Database.Psql)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		if err := persistence.EnsureQueueBlobSchema(db); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return persistence.NewPostgresBlobStore(db), func() { _ = db.Close() }, nil
	case "mysql":
		db, err := persistence.NewRepositories(c.Database.MySql)
		if err != nil {
			return nil, noop, fmt.Errorf("connect mysql: %w", err)
		}
		if err := persistence.EnsureQueueBlobTable(db); err != nil {
			return nil, noop, fmt.Errorf("migrate queue_blobs: %w", err)
		}
		closer := noop
		if sqlDB, err := db.DB(); err == nil {
			closer = func() { _ = sqlDB.Close() }
		}
		return persistence.NewMySQLBlobStore(db), closer, nil
	default:
		return nil, noop, fmt.Errorf("unknown queue backend %q", c.Queue.Backend)
	}
}
