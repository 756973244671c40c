package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forgo/smartwords/internal/model"
	"github.com/forgo/smartwords/internal/repository"
	"github.com/forgo/smartwords/internal/service"
)

func newSeedCommand(configFile *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a sample set into the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, logger, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			store, err := repository.OpenSetStore(ctx, cfg.SetStoreConfig(), logger)
			if err != nil {
				return fmt.Errorf("failed to open %s set store: %w", cfg.Store.Backend, err)
			}
			defer func() { _ = store.Close() }()

			svc := service.NewSetService(service.SetServiceConfig{Store: store, Logger: logger})
			set, err := svc.Create(ctx, sampleSet(name))
			if err != nil {
				return fmt.Errorf("failed to seed set: %w", err)
			}

			logger.Info("seeded set",
				zap.String("id", set.ID()),
				zap.String("name", set.Name()),
				zap.Int("words", len(set.Words())),
			)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), set.ID())
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "Spanish Basics", "name of the sample set")
	return cmd
}

func sampleSet(name string) model.CreateSetRequest {
	return model.CreateSetRequest{
		Name:        name,
		Description: "Everyday Spanish words for beginners",
		Words: []model.CreateWordRequest{
			{Word: "hola", Meaning: "hello"},
			{Word: "gracias", Meaning: "thank you"},
			{Word: "agua", Meaning: "water"},
			{Word: "libro", Meaning: "book"},
			{Word: "casa", Meaning: "house"},
		},
	}
}
