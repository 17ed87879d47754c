package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"formidamail/internal/journal"
)

func openJournal(path string) (*journal.SQLiteJournal, error) {
	if path == "" {
		return nil, nil
	}
	j, err := journal.NewSQLiteJournal(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open journal: %w", err)
	}
	return j, nil
}

func registerJournalCommand(a *cli.App) {
	var (
		path  string
		limit int
	)
	a.Commands = append(a.Commands, &cli.Command{
		Name:  "journal",
		Usage: "Print recorded session activity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "journal",
				Usage:       "sqlite journal file",
				EnvVars:     []string{"FORMIDAMAIL_JOURNAL"},
				Destination: &path,
				Required:    true,
			},
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "number of most recent entries to show (0 = all)",
				Destination: &limit,
				Value:       20,
			},
		},
		Action: func(c *cli.Context) error {
			j, err := openJournal(path)
			if err != nil {
				return err
			}
			defer j.Close()

			entries, err := j.List(c.Context, limit)
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}
			for _, e := range entries {
				auth := "out"
				if e.Authenticated {
					auth = "in"
				}
				fmt.Fprintf(c.App.Writer, "%5d %s %-6s %-36s idx=%d count=%d auth=%s\n",
					e.Seq, e.At.Format(time.RFC3339), e.Op, e.EmailID, e.Index, e.Count, auth)
			}
			return nil
		},
	})
}
