package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lokhei/Ridesharing-Simulation/engine"
	"github.com/lokhei/Ridesharing-Simulation/internal/config"
	"github.com/lokhei/Ridesharing-Simulation/internal/report"
	"github.com/lokhei/Ridesharing-Simulation/internal/telemetry"
)

var (
	flagNumDrivers  int
	flagWidth       int
	flagHeight      int
	flagMultiPass   bool
	flagSeed        int64
	flagStrategy    string
	flagRate        int
	flagWaitingTime int
	flagTotalSteps  int
	flagCapacity    int
	flagDetourMax   int
	flagReportDir   string
	flagMetricsAddr string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation for a fixed number of ticks and print a report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		bindRunFlags(cmd)
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			var cerr *engine.ConfigError
			if ok := asConfigError(err, &cerr); ok {
				log.Fatalf("invalid configuration: %v", cerr)
			}
			return err
		}
		if cfg.TotalSteps <= 0 {
			cfg.TotalSteps = 100
		}

		world, err := engine.NewWorld(cfg, log)
		if err != nil {
			return err
		}

		if flagMetricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			metricsSrv := &http.Server{Addr: flagMetricsAddr, Handler: mux}
			go func() {
				if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.WithError(err).Error("metrics server stopped")
				}
			}()
			defer metricsSrv.Shutdown(context.Background())
			log.Infof("serving metrics on %s/metrics", flagMetricsAddr)
		}

		obs := &telemetry.Observer{}
	steps:
		for i := 0; i < cfg.TotalSteps; i++ {
			select {
			case <-ctx.Done():
				log.Warn("interrupted, stopping early")
				break steps
			default:
				world.Step()
				obs.Observe(world)
			}
		}

		report.PrintConsole(os.Stdout, world)
		if flagReportDir != "" {
			modelPath, agentPath, err := report.WriteCSV(flagReportDir, world.RunID, world.Metrics, log)
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s and %s\n", modelPath, agentPath)
		}
		return nil
	},
}

func asConfigError(err error, target **engine.ConfigError) bool {
	if ce, ok := err.(*engine.ConfigError); ok {
		*target = ce
		return true
	}
	return false
}

// bindRunFlags copies any explicitly-set flag on cmd into viper, so
// command-line values win over config file and default values without
// clobbering unset flags. Shared by run and serve, whose flag sets
// overlap.
func bindRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("num-drivers") {
		v.Set(config.KeyNumDrivers, flagNumDrivers)
	}
	if flags.Changed("width") {
		v.Set(config.KeyWidth, flagWidth)
	}
	if flags.Changed("height") {
		v.Set(config.KeyHeight, flagHeight)
	}
	if flags.Changed("multi-pass") {
		v.Set(config.KeyMultiPass, flagMultiPass)
	}
	if flags.Changed("seed") {
		v.Set(config.KeySeed, flagSeed)
	}
	if flags.Changed("strategy") {
		v.Set(config.KeyStrategy, flagStrategy)
	}
	if flags.Changed("rate") {
		v.Set(config.KeyRate, flagRate)
	}
	if flags.Changed("waiting-time") {
		v.Set(config.KeyWaitingTime, flagWaitingTime)
	}
	if flags.Changed("total-steps") {
		v.Set(config.KeyTotalSteps, flagTotalSteps)
	}
	if flags.Changed("capacity") {
		v.Set(config.KeyCapacity, flagCapacity)
	}
	if flags.Changed("detour-max") {
		v.Set(config.KeyDetourMax, flagDetourMax)
	}
}

func init() {
	runCmd.Flags().IntVar(&flagNumDrivers, "num-drivers", 5, "fleet size")
	runCmd.Flags().IntVar(&flagWidth, "width", 10, "grid width")
	runCmd.Flags().IntVar(&flagHeight, "height", 10, "grid height")
	runCmd.Flags().BoolVar(&flagMultiPass, "multi-pass", false, "enable ride-sharing enroute insertion")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 125, "PRNG seed")
	runCmd.Flags().StringVar(&flagStrategy, "strategy", "CLOSEST", "dispatch strategy: QUEUE, CLOSEST, WAITING")
	runCmd.Flags().IntVar(&flagRate, "rate", 5, "ticks between new request arrivals")
	runCmd.Flags().IntVar(&flagWaitingTime, "waiting-time", 0, "base waiting budget for a spawned request, in ticks; budgets are drawn from [base, base+10], or from [10, 40] when unset")
	runCmd.Flags().IntVar(&flagTotalSteps, "total-steps", 0, "ticks to run (0 defaults to 100)")
	runCmd.Flags().IntVar(&flagCapacity, "capacity", 4, "max onboard passengers per driver")
	runCmd.Flags().IntVar(&flagDetourMax, "detour-max", 10, "max extra Manhattan cells per enroute insertion")
	runCmd.Flags().StringVar(&flagReportDir, "report-dir", "", "directory to write CSV reports into")
	runCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address at /metrics")
}
