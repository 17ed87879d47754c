package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"formidamail/internal/app"
	"formidamail/internal/config"
	"formidamail/internal/tui"
)

func registerTUICommand(a *cli.App) {
	cfg := &config.CliConfig{}
	cmd := &cli.Command{
		Name:   "tui",
		Usage:  "Open the inbox in the terminal",
		Flags:  cfg.Parameters(),
		Action: func(c *cli.Context) error { return runTUI(c, cfg) },
	}
	a.Commands = append(a.Commands, cmd)

	// No subcommand opens the inbox too.
	a.Flags = cmd.Flags
	a.Action = cmd.Action
}

func runTUI(c *cli.Context, cfg *config.CliConfig) error {
	closer, err := cfg.ConfigureLogging(log.StandardLogger(), true)
	if err != nil {
		return err
	}
	defer closer.Close()

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

	appModel := tui.NewAppModel(c.Context, tui.Options{
		Scope:       scopeCfg,
		FaultSender: cfg.FaultSender,
		Logger:      log.StandardLogger(),
	})
	defer appModel.Close()

	p := tea.NewProgram(appModel, tea.WithAltScreen(), tea.WithContext(c.Context))
	appModel.SetProgram(p)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	if m, ok := finalModel.(*tui.AppModel); ok && m.Err != nil {
		return m.Err
	}
	return nil
}
