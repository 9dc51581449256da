package main

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
	"github.com/pulseworks/pulse-sdk/modules/member/handlers"
	memberPersistence "github.com/pulseworks/pulse-sdk/modules/member/infrastructure/persistence"
	memberServices "github.com/pulseworks/pulse-sdk/modules/member/services"
	orgPersistence "github.com/pulseworks/pulse-sdk/modules/organization/infrastructure/persistence"
	"github.com/pulseworks/pulse-sdk/pkg/composables"
	"github.com/pulseworks/pulse-sdk/pkg/configuration"
	"github.com/pulseworks/pulse-sdk/pkg/eventbus"
	"github.com/pulseworks/pulse-sdk/pkg/queue"
)

func newRefreshCmd() *cobra.Command {
	var memberIDArg string
	var async bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute and propagate one member's affiliations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			memberID, err := uuid.Parse(memberIDArg)
			if err != nil {
				return errors.Wrap(err, "invalid member id")
			}

			conf := configuration.Use()
			log := conf.Logger()

			if async {
				return withQueueClient(cmd.Context(), func(ctx context.Context, client *queue.Client) error {
					return handlers.EnqueueRefresh(ctx, client, memberID)
				})
			}

			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				publisher := eventbus.NewEventPublisher(log)
				svc := memberServices.NewAffiliationService(
					memberPersistence.NewMembershipRepository(),
					memberPersistence.NewActivityRepository(),
					orgPersistence.NewOrganizationRepository(),
					publisher,
					log,
					conf.Affiliation.BatchSize,
				)
				processed, err := svc.RefreshMemberAffiliations(ctx, memberID)
				if err != nil {
					return err
				}
				cmd.Printf("refreshed member %s, %d activities reassigned\n", memberID, processed)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&memberIDArg, "member-id", "", "member id to refresh (required)")
	cmd.Flags().BoolVar(&async, "async", false, "enqueue the refresh instead of running it inline")
	_ = cmd.MarkFlagRequired("member-id")
	return cmd
}

func newMergeCmd() *cobra.Command {
	var kindArg, primaryArg, secondaryArg string
	var async bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge two entities' membership role sets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind := membership.MergeKind(kindArg)
			if kind != membership.MergeKindMember && kind != membership.MergeKindOrganization {
				return errors.Errorf("invalid kind %q (expected member|organization)", kindArg)
			}
			primaryID, err := uuid.Parse(primaryArg)
			if err != nil {
				return errors.Wrap(err, "invalid primary id")
			}
			secondaryID, err := uuid.Parse(secondaryArg)
			if err != nil {
				return errors.Wrap(err, "invalid secondary id")
			}

			conf := configuration.Use()
			log := conf.Logger()

			if async {
				return withQueueClient(cmd.Context(), func(ctx context.Context, client *queue.Client) error {
					return handlers.EnqueueMerge(ctx, client, kind, primaryID, secondaryID)
				})
			}

			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				publisher := eventbus.NewEventPublisher(log)
				svc := memberServices.NewMergeService(memberPersistence.NewMembershipRepository(), publisher, log)

				var result memberServices.MergeResult
				switch kind {
				case membership.MergeKindMember:
					result, err = svc.MergeMembers(ctx, primaryID, secondaryID)
				case membership.MergeKindOrganization:
					result, err = svc.MergeOrganizations(ctx, primaryID, secondaryID)
				}
				if err != nil {
					return err
				}
				cmd.Printf("merged %s %s into %s: %d added, %d removed\n",
					kind, secondaryID, primaryID, len(result.Added), len(result.Removed))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kindArg, "kind", "member", "merge kind: member or organization")
	cmd.Flags().StringVar(&primaryArg, "primary-id", "", "primary entity id (kept)")
	cmd.Flags().StringVar(&secondaryArg, "secondary-id", "", "secondary entity id (absorbed)")
	cmd.Flags().BoolVar(&async, "async", false, "enqueue the merge instead of running it inline")
	_ = cmd.MarkFlagRequired("primary-id")
	_ = cmd.MarkFlagRequired("secondary-id")
	return cmd
}

func withPool(ctx context.Context, fn func(context.Context, *pgxpool.Pool) error) error {
	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(composables.WithPool(ctx, pool), pool)
}

func withQueueClient(ctx context.Context, fn func(context.Context, *queue.Client) error) error {
	conf := configuration.Use()
	redisClient := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()

	client := queue.NewClient(redisClient, conf.Queue.MaxRetry)
	defer func() { _ = client.Close() }()

	return fn(ctx, client)
}
