// Package testutil starts throw-away containers for integration tests.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrDockerUnavailable = errors.New("docker unavailable")

// Containers owns every container started for one test binary.
type Containers struct {
	pool      *dockertest.Pool
	resources []*dockertest.Resource
}

func NewContainers() (*Containers, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDockerUnavailable, err)
	}
	if err = pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDockerUnavailable, err)
	}
	pool.MaxWait = 2 * time.Minute

	return &Containers{pool: pool}, nil
}

func (c *Containers) run(opts *dockertest.RunOptions) (*dockertest.Resource, error) {
	resource, err := c.pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, err
	}
	_ = resource.Expire(180)
	c.resources = append(c.resources, resource)

	return resource, nil
}

// Postgres starts PostgreSQL and returns a connected, empty database.
func (c *Containers) Postgres() (*gorm.DB, error) {
	resource, err := c.run(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=meetup",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=meetup_test",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("c.run -> %w", err)
	}

	dsn := fmt.Sprintf("postgres://meetup:secret@%s/meetup_test?sslmode=disable", resource.GetHostPort("5432/tcp"))

	var db *gorm.DB
	err = c.pool.Retry(func() error {
		conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
		if err != nil {
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}

		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("c.pool.Retry -> %w", err)
	}

	return db, nil
}

func (c *Containers) Redis() (*redis.Client, error) {
	resource, err := c.run(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	})
	if err != nil {
		return nil, fmt.Errorf("c.run -> %w", err)
	}

	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort("6379/tcp")})
	err = c.pool.Retry(func() error {
		return client.Ping(context.Background()).Err()
	})
	if err != nil {
		return nil, fmt.Errorf("c.pool.Retry -> %w", err)
	}

	return client, nil
}

// Purge removes every started container. Failures are logged.
func (c *Containers) Purge() {
	for _, r := range c.resources {
		if err := c.pool.Purge(r); err != nil {
			zap.L().Warn("could not purge container", zap.String("container", r.Container.Name), zap.Error(err))
		}
	}
}
