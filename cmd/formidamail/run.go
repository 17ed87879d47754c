package main

import (
	"context"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"formidamail/internal/app"
	"formidamail/internal/config"
	"formidamail/internal/console"
	"formidamail/internal/inbox"
	"formidamail/internal/loop"
)

func registerRunCommand(a *cli.App) {
	cfg := &config.CliConfig{}
	a.Commands = append(a.Commands, &cli.Command{
		Name:  "run",
		Usage: "Run the inbox headless, reading commands from stdin",
		Description: `Commands: ls, rm ID, undo, login, logout, quit.
The session ends at end of input, on quit, or on SIGINT/SIGTERM.`,
		Flags:  cfg.Parameters(),
		Action: func(c *cli.Context) error { return runHeadless(c, cfg) },
	})
}

func runHeadless(c *cli.Context, cfg *config.CliConfig) error {
	closer, err := cfg.ConfigureLogging(log.StandardLogger(), false)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.WithFields(log.Fields{
		"authenticated":  cfg.Authenticated,
		"seed_file":      cfg.SeedFile,
		"capacity":       cfg.Capacity,
		"interval":       cfg.Interval,
		"generator_seed": cfg.GeneratorSeed,
		"journal":        cfg.Journal,
		"log_level":      cfg.LogLevel,
		"log_format":     cfg.LogFormat,
	}).Info("starting")

	var scopeCfg app.Config
	if err := cfg.BuildScopeConfig(&scopeCfg, cfg.Generator()); err != nil {
		return err
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
		scopeCfg.Journal = j
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := loop.New(16)
	scopeCfg.Dispatch = func(task func()) { l.Post(task) }
	scopeCfg.Logger = log.StandardLogger()

	scope := app.Open(ctx, scopeCfg)
	defer scope.Close()

	scope.Store.Subscribe(func(ch inbox.Change) {
		log.WithFields(log.Fields{
			"op":    ch.Op,
			"id":    ch.Record.ID,
			"index": ch.Index,
			"count": len(ch.State.Emails),
		}).Info("inbox_changed")
	})

	go func() {
		defer cancel()
		if err := console.Serve(ctx, c.App.Reader, c.App.Writer, scope, l.Call); err != nil {
			log.WithError(err).Error("console_read_failed")
		}
	}()

	err = l.Run(ctx)
	log.Info("session_ended")
	return err
}
