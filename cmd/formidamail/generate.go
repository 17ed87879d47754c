package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"formidamail/internal/config"
	"formidamail/internal/mockdata"
)

func registerGenerateCommand(a *cli.App) {
	var seed int64
	a.Commands = append(a.Commands, &cli.Command{
		Name:      "generate",
		Usage:     "Print N generated emails as a seed file",
		ArgsUsage: "N",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "generator-seed",
				Usage:       "seed for generated names and text (0 = random)",
				EnvVars:     []string{"FORMIDAMAIL_GENERATOR_SEED"},
				Destination: &seed,
			},
		},
		Action: func(c *cli.Context) error {
			n := 5
			if c.Args().Len() > 0 {
				v, err := strconv.Atoi(c.Args().First())
				if err != nil || v < 0 {
					return fmt.Errorf("invalid count %q", c.Args().First())
				}
				n = v
			}
			return config.EncodeSeed(c.App.Writer, mockdata.New(seed).GenerateBatch(n))
		},
	})
}
