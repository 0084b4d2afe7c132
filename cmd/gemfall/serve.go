package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/gemfall/internal/platform/tui"
	"github.com/vovakirdan/gemfall/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gemfall SSH and web servers",
	Long: `Start an SSH server where each connection gets its own menu and game,
and a web server where browsers create games over a JSON API and play
them over a websocket. Both share one scores database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gemfall/host_key

Web API:
  POST   /api/games?level=N&seed=S  - Create a game
  GET    /api/games/{id}            - Current snapshot
  DELETE /api/games/{id}            - Drop a game
  GET    /api/games/{id}/ws         - Websocket: send tap/shuffle/hint/restart/start/next
  GET    /api/runs?game=ID&limit=N  - Recent finished levels

Examples:
  gemfall serve                           # SSH on :23234, web on :8080
  gemfall serve --ssh :2222 --http ""     # SSH only
  gemfall serve --ssh "" --http :9000     # Web only
  gemfall serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty disables)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "Web server address (empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fail("nothing to serve: both --ssh and --http are empty")
	}

	logger := newLogger("gemfall-serve")
	setup, err := loadSetup(logger)
	if err != nil {
		fail("%v", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.TickRate = flagFPS
		cfg.Setup = setup

		server, err := tui.NewSSHServer(cfg, store, logger.WithPrefix("gemfall-ssh"))
		if err != nil {
			fail("creating SSH server: %v", err)
		}
		fmt.Printf("SSH server on %s (connect with: ssh localhost -p <port>)\n", cfg.Address)
		g.Go(func() error {
			return server.ListenAndServe(ctx)
		})
	}

	if flagHTTPAddr != "" {
		cfg := web.DefaultConfig()
		cfg.Address = flagHTTPAddr
		cfg.Setup = setup

		server := web.NewServer(cfg, store, logger.WithPrefix("gemfall-web"))
		fmt.Printf("Web server on %s\n", cfg.Address)
		g.Go(func() error {
			return server.ListenAndServe(ctx)
		})
	}

	fmt.Println("Press Ctrl+C to stop")
	if err := g.Wait(); err != nil {
		if store != nil {
			store.Close()
		}
		fail("server: %v", err)
	}
}
