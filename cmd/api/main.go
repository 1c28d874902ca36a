package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	ucSchedule "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/schedule"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "clinic-scheduler",
		Short:         "Doctor appointment scheduling API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedSchedulesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config and a logger for the current environment.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	logger := logging.New(os.Getenv("ENV"))

	cfg, err := config.Load()
	if err != nil {
		return nil, logger, fmt.Errorf("load config: %w", err)
	}
	return cfg, logging.New(cfg.Env), nil
}

// openPostgres is for the commands that only make sense against a real
// database.
func openPostgres(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	if cfg.StoreDriver != config.StorePostgres {
		return nil, errors.New("this command needs STORE_DRIVER=postgres")
	}
	return dbpkg.NewDB(cfg, logger)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and the booking indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			db, err := openPostgres(cfg, logger)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

func seedSchedulesCmd() *cobra.Command {
	var doctorID uint

	cmd := &cobra.Command{
		Use:   "seed-schedules",
		Short: "Insert the default weekly rows doctors are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			db, err := openPostgres(cfg, logger)
			if err != nil {
				return err
			}

			uc := ucSchedule.NewInitializeSchedule(
				infraRepo.NewAppointmentGormRepository(db),
				nil,
				logger,
			)

			ctx := context.Background()
			var n int
			if doctorID != 0 {
				n, err = uc.Execute(ctx, doctorID)
			} else {
				n, err = uc.ExecuteAll(ctx)
			}
			if err != nil {
				return err
			}

			logger.Info().Int("inserted", n).Msg("weekly schedules seeded")
			return nil
		},
	}

	cmd.Flags().UintVar(&doctorID, "doctor", 0, "seed a single doctor by id")
	return cmd
}
