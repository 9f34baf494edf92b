package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleetdepot/depot/internal/events"
)

func etlCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "etl",
		Short: "parts feed import",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "import one batch from the parts feed and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if conf.ETL.SourceDSN == "" {
				return fmt.Errorf("etl.source_dsn is not configured")
			}

			ctx := cmd.Context()
			var publisher events.Multi
			if conf.Kafka.Enabled {
				producer, err := events.NewKafkaProducer(conf.Kafka.Brokers)
				if err != nil {
					return fmt.Errorf("failed to initialize kafka -> %w", err)
				}
				kafkaPub := events.NewKafkaPublisher(producer, conf.Kafka.StockTopic)
				defer kafkaPub.Close()
				publisher = append(publisher, kafkaPub)
			}

			job, cleanup, err := buildETLJob(ctx, conf, databaseURL(conf), publisher)
			if err != nil {
				return err
			}
			defer cleanup()

			run, err := job.RunOnce(ctx)
			if err != nil {
				return fmt.Errorf("job.RunOnce -> %w", err)
			}
			zap.L().Info("etl run finished",
				zap.String("batch_id", run.BatchID),
				zap.Int("rows_copied", run.RowsCopied),
				zap.Int("rows_merged", run.RowsMerged),
			)

			return nil
		},
	})

	return cmd
}
