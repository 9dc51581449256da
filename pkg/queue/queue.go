package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Config configures the worker side. The retry budget is a task property,
// set by Client at enqueue time, so it does not appear here.
type Config struct {
	Redis           redis.UniversalClient
	Concurrency     int
	ShutdownTimeout time.Duration
	Log             *logrus.Logger
}

// redisConnOpt adapts an already-configured go-redis client to asynq so both
// share one connection setup.
type redisConnOpt struct {
	client redis.UniversalClient
}

func (r redisConnOpt) MakeRedisClient() interface{} { return r.client }

type Client struct {
	client   *asynq.Client
	maxRetry int
}

func NewClient(redisClient redis.UniversalClient, maxRetry int) *Client {
	return &Client{
		client:   asynq.NewClientFromRedisClient(redisClient),
		maxRetry: maxRetry,
	}
}

// Enqueue serializes the payload and pushes a task. Tasks are retried by
// asynq; handlers must stay idempotent, which affiliation propagation is.
func (c *Client) Enqueue(ctx context.Context, taskType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal task payload")
	}
	_, err = c.client.EnqueueContext(ctx, asynq.NewTask(taskType, data), asynq.MaxRetry(c.maxRetry))
	if err != nil {
		return errors.Wrapf(err, "enqueue %s", taskType)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil || cfg.Redis == nil {
		return nil, errors.New("queue config with a redis client is required")
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	server := asynq.NewServer(redisConnOpt{client: cfg.Redis}, asynq.Config{
		Concurrency:     concurrency,
		ShutdownTimeout: shutdownTimeout,
		Logger:          newLoggerAdapter(cfg.Log),
	})

	return &Server{
		server: server,
		mux:    asynq.NewServeMux(),
	}, nil
}

func (s *Server) HandleFunc(taskType string, handler func(context.Context, *asynq.Task) error) {
	s.mux.HandleFunc(taskType, handler)
}

func (s *Server) Run() error {
	return s.server.Run(s.mux)
}

func (s *Server) Shutdown() {
	s.server.Shutdown()
}
