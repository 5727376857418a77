// README: Entry point; loads config, wires the three workers, starts the status API.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"roadpulse/internal/config"
	httptransport "roadpulse/internal/http"
	"roadpulse/internal/infra"
	"roadpulse/internal/modules/sensor"
	"roadpulse/internal/modules/telemetry"
	"roadpulse/internal/modules/uplink"
	"roadpulse/internal/modules/vehicle"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roadpulse",
		Short: "Vehicle telemetry pipeline: sampler, decision rules, and uplink with retry",
	}
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var (
		seed     int64
		duration time.Duration
		backend  string
		queueCap int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the telemetry pipeline until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("uplink") {
				cfg.Uplink.Backend = backend
			}
			if cmd.Flags().Changed("queue-cap") {
				cfg.Pipeline.QueueCapacity = queueCap
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			return run(ctx, cfg)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the sensor walk and simulated transport")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Stop after this long (0 = run forever)")
	cmd.Flags().StringVar(&backend, "uplink", "sim", "Uplink backend (sim, redis, postgres)")
	cmd.Flags().IntVar(&queueCap, "queue-cap", 1000, "Telemetry queue capacity")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	veh := vehicle.NewService(cfg.Rules.MovingSpeedKmh)
	src := sensor.NewWalkSource(cfg.Seed)
	queue := telemetry.NewQueue(cfg.Pipeline.QueueCapacity)
	decider := telemetry.NewDecider(veh, queue, cfg.Rules, time.Now())

	sender, err := newSender(ctx, cfg)
	if err != nil {
		return err
	}
	up := uplink.NewService(queue, sender)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Vehicle: veh,
		Queue:   queue,
		Decider: decider,
		Uplink:  up,
	})
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go veh.RunSampler(ctx, src, cfg.Pipeline.SampleInterval)
	go decider.RunDecider(ctx, cfg.Pipeline.DecideInterval)
	go up.RunSender(ctx, cfg.Pipeline.DrainBackoff)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("roadpulse listening on %s (uplink=%s)", cfg.HTTP.Addr, cfg.Uplink.Backend)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func newSender(ctx context.Context, cfg config.Config) (uplink.Sender, error) {
	switch cfg.Uplink.Backend {
	case "redis":
		return uplink.NewRedisSender(infra.NewRedis(cfg.Redis.Addr), cfg.Redis.Key), nil
	case "postgres":
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, fmt.Errorf("postgres uplink: %w", err)
		}
		return uplink.NewPostgresSender(db), nil
	case "sim":
		return uplink.NewSimSender(cfg.Seed, cfg.Uplink.LatencyUnit, cfg.Uplink.FailurePct), nil
	default:
		return nil, fmt.Errorf("unknown uplink backend %q", cfg.Uplink.Backend)
	}
}
