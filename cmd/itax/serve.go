package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rgehrsitz/itax/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the tax API. Settings come from ITAX_ADDR, ITAX_REDIS_ADDR,
ITAX_REDIS_PASSWORD, ITAX_REDIS_DB, ITAX_SESSION_TTL and GIN_MODE; flags
override the environment. Without a Redis address sessions are kept in
memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr, _ = flags.GetString("addr")
			}
			if flags.Changed("redis-addr") {
				cfg.RedisAddr, _ = flags.GetString("redis-addr")
			}
			if flags.Changed("redis-db") {
				cfg.RedisDB, _ = flags.GetInt("redis-db")
			}
			if flags.Changed("session-ttl") {
				cfg.SessionTTL, _ = flags.GetDuration("session-ttl")
			}

			calc, err := newCalculator(cmd)
			if err != nil {
				return err
			}

			store := cfg.NewSessionStore()
			if c, ok := store.(io.Closer); ok {
				defer c.Close()
			}

			srv := server.New(cfg, calc, store)
			srv.SetLogger(cliLogger(cmd))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			backend := "memory"
			if cfg.RedisAddr != "" {
				backend = "redis at " + cfg.RedisAddr
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "itax API listening on %s (sessions: %s)\n", cfg.Addr, backend)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().String("redis-addr", "", "Redis address for session storage")
	cmd.Flags().Int("redis-db", 0, "Redis database number")
	cmd.Flags().Duration("session-ttl", 24*time.Hour, "Session lifetime")
	return cmd
}
