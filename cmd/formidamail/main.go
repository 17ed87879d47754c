package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := &cli.App{
		Name:  "formidamail",
		Usage: "a toy inbox fed with mock mail",
		Description: `Formidamail shows an inbox that a timer keeps topping up with
generated mail. Emails can be removed and the last removal undone.
`,
	}

	registerTUICommand(app)
	registerRunCommand(app)
	registerGenerateCommand(app)
	registerJournalCommand(app)
	return app
}
