package main

import (
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pulseworks/pulse-sdk/modules/member/handlers"
	memberPersistence "github.com/pulseworks/pulse-sdk/modules/member/infrastructure/persistence"
	memberServices "github.com/pulseworks/pulse-sdk/modules/member/services"
	orgPersistence "github.com/pulseworks/pulse-sdk/modules/organization/infrastructure/persistence"
	"github.com/pulseworks/pulse-sdk/pkg/configuration"
	"github.com/pulseworks/pulse-sdk/pkg/eventbus"
	"github.com/pulseworks/pulse-sdk/pkg/queue"
)

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the affiliation maintenance worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()
			log := conf.Logger()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			pool, err := pgxpool.New(ctx, conf.Database.Opts)
			if err != nil {
				return err
			}
			defer pool.Close()

			redisClient := redis.NewClient(&redis.Options{
				Addr:     conf.Redis.Addr,
				Password: conf.Redis.Password,
				DB:       conf.Redis.DB,
			})
			defer func() { _ = redisClient.Close() }()

			srv, err := queue.NewServer(&queue.Config{
				Redis:           redisClient,
				Concurrency:     conf.Queue.Concurrency,
				ShutdownTimeout: conf.Queue.ShutdownTimeout,
				Log:             log,
			})
			if err != nil {
				return err
			}

			publisher := eventbus.NewEventPublisher(log)
			memberships := memberPersistence.NewMembershipRepository()
			activities := memberPersistence.NewActivityRepository()
			organizations := orgPersistence.NewOrganizationRepository()

			affiliations := memberServices.NewAffiliationService(
				memberships, activities, organizations, publisher, log, conf.Affiliation.BatchSize,
			)
			merges := memberServices.NewMergeService(memberships, publisher, log)

			handler := handlers.NewMemberTaskHandler(affiliations, merges, pool, log)
			handler.Register(srv)

			go func() {
				<-ctx.Done()
				srv.Shutdown()
			}()

			log.Info("affiliation maintenance worker started")
			return srv.Run()
		},
	}
}
