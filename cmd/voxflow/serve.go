package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxflow/voxflow"
	"github.com/voxflow/voxflow/internal/logging"
	"github.com/voxflow/voxflow/pkg/adapters/memory"
	redisstore "github.com/voxflow/voxflow/pkg/adapters/redis"
	"github.com/voxflow/voxflow/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long: `Starts the voxflow webhook server. Flows are served from a YAML
directory by default, or from Redis with --redis. The base URL must be the
address the telephony provider reaches this server at, since it is embedded
in every callback continuation.`,
	Run: func(cmd *cobra.Command, args []string) {
		flowsDir, _ := cmd.Flags().GetString("flows")
		addr, _ := cmd.Flags().GetString("addr")
		baseURL, _ := cmd.Flags().GetString("base-url")
		redisAddr, _ := cmd.Flags().GetString("redis")

		logger := logging.New(slog.LevelInfo)

		opts := []voxflow.Option{
			voxflow.WithLogger(logger),
			voxflow.WithBaseURL(baseURL),
		}

		var logs ports.CallLogStore
		if redisAddr != "" {
			store := redisstore.New(redisAddr, os.Getenv("VOXFLOW_REDIS_PASSWORD"), 0)
			opts = append(opts, voxflow.WithResolver(store))
			logs = redisstore.NewCallLog(store.Client(), "voxflow:", 0)
		} else {
			logs = memory.NewCallLog(0)
		}
		opts = append(opts, voxflow.WithCallLog(logs))

		svc, err := voxflow.New(flowsDir, opts...)
		if err != nil {
			fmt.Printf("Error initializing voxflow: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    addr,
			Handler: svc.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting voxflow webhook server on %s\n", srv.Addr)
			if redisAddr != "" {
				fmt.Printf("Serving flows from redis at %s\n", redisAddr)
			} else {
				fmt.Printf("Serving flows from: %s\n", flowsDir)
			}
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding callbacks a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("voxflow server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().String("base-url", "/voice", "Externally reachable webhook URL for callback continuations")
	serveCmd.Flags().String("redis", "", "Redis address to serve flows from (empty: serve from --flows directory)")
}
