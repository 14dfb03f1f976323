package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/events"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/repository"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/service"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/source"
	"github.com/shiftboard/shiftboard-backend/pkg/config"
	"github.com/shiftboard/shiftboard-backend/pkg/database"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
	"github.com/shiftboard/shiftboard-backend/pkg/messaging"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var printJSON bool

	cmd := &cobra.Command{
		Use:          "shiftboard-sync [shifts|users|all]",
		Short:        "Run a one-off synchronization of the workforce exports",
		Args:         cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs:    []string{"shifts", "users", "all"},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "all"
			if len(args) == 1 {
				target = args[0]
			}
			entities, err := entitiesFor(target)
			if err != nil {
				return err
			}
			return run(cmd.Context(), entities, printJSON)
		},
	}

	cmd.Flags().BoolVar(&printJSON, "json", false, "print each sync result as JSON")
	return cmd
}

func entitiesFor(target string) ([]domain.Entity, error) {
	if target == "all" {
		return domain.Entities, nil
	}
	entity, err := domain.ParseEntity(target)
	if err != nil {
		return nil, err
	}
	return []domain.Entity{entity}, nil
}

func run(ctx context.Context, entities []domain.Entity, printJSON bool) error {
	cfg, err := config.LoadWithValidation("shiftboard-sync")
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	log := logger.New("shiftboard-sync", cfg.Server.Environment)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	var publisher *events.SyncEventPublisher
	if cfg.RabbitMQ.Enabled {
		rmq, err := messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		defer rmq.Close()

		if publisher, err = events.NewSyncEventPublisher(rmq, cfg.RabbitMQ.Exchange, log); err != nil {
			return fmt.Errorf("failed to create event publisher: %w", err)
		}
	}

	svc := service.NewSyncService(
		source.NewClient(cfg.Source, log),
		repository.NewShiftRepository(db),
		repository.NewUserRepository(db),
		publisher,
		nil,
		log,
	)

	failed := 0
	for _, entity := range entities {
		result := svc.Sync(ctx, entity)
		if !result.Success {
			failed++
		}
		if printJSON {
			out, _ := json.Marshal(result)
			fmt.Println(string(out))
			continue
		}
		fmt.Printf("%-6s success=%t count=%d warnings=%d duration=%dms %s\n",
			entity, result.Success, result.Count, len(result.Warnings), result.DurationMS, result.Error)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d syncs failed", failed, len(entities))
	}
	return nil
}
