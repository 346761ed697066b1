package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/lokhei/Ridesharing-Simulation/internal/config"
	"github.com/lokhei/Ridesharing-Simulation/internal/visualize"
)

var (
	flagAddr     string
	flagTickRate time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live visualization stream over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		bindRunFlags(cmd)
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}

		vis := visualize.New(cfg, flagTickRate, log)
		httpSrv := &http.Server{Addr: flagAddr, Handler: vis.Router()}

		errCh := make(chan error, 1)
		go func() {
			log.Infof("serving on %s", flagAddr)
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		case <-ctx.Done():
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "address to listen on")
	serveCmd.Flags().DurationVar(&flagTickRate, "tick-rate", 200*time.Millisecond, "wall-clock time between ticks")
	serveCmd.Flags().IntVar(&flagNumDrivers, "num-drivers", 5, "fleet size")
	serveCmd.Flags().IntVar(&flagWidth, "width", 10, "grid width")
	serveCmd.Flags().IntVar(&flagHeight, "height", 10, "grid height")
	serveCmd.Flags().BoolVar(&flagMultiPass, "multi-pass", false, "enable ride-sharing enroute insertion")
	serveCmd.Flags().Int64Var(&flagSeed, "seed", 125, "PRNG seed")
	serveCmd.Flags().StringVar(&flagStrategy, "strategy", "CLOSEST", "dispatch strategy: QUEUE, CLOSEST, WAITING")
	serveCmd.Flags().IntVar(&flagRate, "rate", 5, "ticks between new request arrivals")
	serveCmd.Flags().IntVar(&flagWaitingTime, "waiting-time", 0, "base waiting budget for a spawned request, in ticks; budgets are drawn from [base, base+10], or from [10, 40] when unset")
	serveCmd.Flags().IntVar(&flagCapacity, "capacity", 4, "max onboard passengers per driver")
	serveCmd.Flags().IntVar(&flagDetourMax, "detour-max", 10, "max extra Manhattan cells per enroute insertion")
}
