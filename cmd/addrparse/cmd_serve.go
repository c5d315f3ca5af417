package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/npillmayer/addrparse/server"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// DefaultPort is the port the HTTP service listens on if none is given.
const DefaultPort = 8000

func newServeCmd() *cobra.Command {
	var host string
	var debug bool
	cmd := &cobra.Command{
		Use:   "serve [port]",
		Short: "Start an HTTP service for parsing addresses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port := DefaultPort
			if len(args) == 1 {
				p, err := strconv.Atoi(args[0])
				if err != nil || p <= 0 || p > 65535 {
					return fmt.Errorf("invalid port %q", args[0])
				}
				port = p
			}
			if debug {
				tracing.Select("addrparse.server").SetTraceLevel(tracing.LevelDebug)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			addr := net.JoinHostPort(host, strconv.Itoa(port))
			if err := server.New().ListenAndServe(ctx, addr); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "localhost", "HTTP service host")
	cmd.Flags().BoolVar(&debug, "debug", false, "trace server requests")
	return cmd
}
