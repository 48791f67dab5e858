// Command steamfetchd runs the download daemon: it owns the SteamCMD
// scheduler and serves the control socket the CLI talks to.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"steamfetch/internal/config"
	"steamfetch/internal/daemon"
	"steamfetch/internal/deps"
	"steamfetch/internal/download"
	"steamfetch/internal/ipc"
	"steamfetch/internal/logging"
	"steamfetch/internal/steamcmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	for _, status := range deps.CheckSystemDeps(cfg) {
		if !status.Available && !status.Optional {
			logger.Warn("missing dependency, downloads will fail until it is installed",
				logging.String("name", status.Name),
				logging.String("detail", status.Detail),
			)
		}
	}

	tool, err := steamcmd.NewCommandTool(cfg.SteamcmdBinary())
	if err != nil {
		logger.Error("configure steamcmd", logging.Error(err))
		return
	}

	manager := download.NewManager(cfg, tool, logger)
	d, err := daemon.New(cfg, manager, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(ctx, cfg.Paths.SocketPath, d, logger)
	if err != nil {
		logger.Error("start ipc server", logging.Error(err))
		return
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("steamfetchd shutting down")
}
