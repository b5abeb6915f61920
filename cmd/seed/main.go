package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zenhealth/hospital-analytics/internal/application/seeder"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/clients/postgres"
	"github.com/zenhealth/hospital-analytics/internal/infrastructure/observability"
	"github.com/zenhealth/hospital-analytics/pkg/config"
)

var (
	flagDays     int
	flagPatients int
	flagStart    string
	flagSeed     int64
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the hospital analytics database with generated sample data",
	Long: `Generates a consistent hospital dataset (branches, departments, doctors,
patients, admissions, billing, outcomes, occupancy snapshots and alerts)
and loads it into PostgreSQL. A fixed --seed reproduces the same dataset.`,
	RunE: runSeed,
}

func init() {
	rootCmd.Flags().IntVar(&flagDays, "days", 180, "number of days of history to generate")
	rootCmd.Flags().IntVar(&flagPatients, "patients", 2000, "number of patients to register")
	rootCmd.Flags().StringVar(&flagStart, "start", "", "history start date (YYYY-MM-DD, default: --days before today)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed (0 uses the current time)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	observability.InitLogger("hospital-analytics-seed", cfg.App.Env)

	now := time.Now()
	genCfg := seeder.Config{
		Days:     flagDays,
		Patients: flagPatients,
		Now:      now,
	}
	if flagStart != "" {
		start, err := time.Parse("2006-01-02", flagStart)
		if err != nil {
			return fmt.Errorf("invalid --start date: %w", err)
		}
		genCfg.StartDate = start
	} else {
		genCfg.StartDate = now.AddDate(0, 0, -flagDays)
	}

	seed := flagSeed
	if seed == 0 {
		seed = now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	log.Info().
		Time("start_date", genCfg.StartDate).
		Int("days", genCfg.Days).
		Int("patients", genCfg.Patients).
		Int64("seed", seed).
		Msg("generating dataset")

	dataset := seeder.Generate(genCfg, rng)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	return seeder.NewInserter(pgClient).InsertDataset(ctx, dataset)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
