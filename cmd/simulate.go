package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maelh/robogrid/app"
	"github.com/maelh/robogrid/config"
	"github.com/maelh/robogrid/infra/logger"
	"github.com/maelh/robogrid/infra/metrics"
)

var (
	simScenario string
	simSeed     int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a simulation scenario",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "builtin scenario name or YAML file (overrides config)")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "run seed (overrides config)")
	rootCmd.AddCommand(simulateCmd)
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if simScenario != "" {
		cfg.Sim.Scenario = simScenario
	}
	if simSeed != 0 {
		cfg.Sim.Seed = simSeed
	}

	logg := logger.New("simulate-command")
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	if cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, cfg.Metrics.PrometheusAddr); err != nil {
				logg.Errorf("prom server: %v", err)
			}
		}()
	}

	run, err := svc.Simulate(ctx)
	if err != nil {
		return err
	}

	if svc.RunDir != "" {
		fmt.Printf("Saved run to: %s\n", svc.RunDir)
	} else {
		fmt.Printf("Saved run: %s\n", run.ID)
	}
	fmt.Printf("Cost saved (USD): %.2f\n", run.Result.Comparison.DeltaCostUSD)
	fmt.Printf("Grid kWh saved: %.2f\n", run.Result.Comparison.DeltaGridKWh)
	if n := len(run.Result.EnergyAware.Summary.AtRiskTasks); n > 0 {
		fmt.Printf("Deadline at-risk tasks: %d\n", n)
	}

	if cfg.Metrics.PrometheusEnabled {
		logg.Infof("serving metrics on %s, interrupt to exit", cfg.Metrics.PrometheusAddr)
		<-ctx.Done()
	}
	return nil
}
