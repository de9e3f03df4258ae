package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"eventbook/config"
	"eventbook/internal/delivery/console"
	"eventbook/internal/repository/textfile"
	"eventbook/internal/services"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "eventbook",
		Usage: "Register users and events and track participation from the console.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Usage:   "Path to the data file.",
				EnvVars: []string{"EVENTS_FILE"},
			},
		},
		DefaultCommand: "run",
		Commands: []*cli.Command{
			runCommand(),
			listCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the interactive menu.",
		Action: func(c *cli.Context) error {
			logger, store, err := setup(c)
			if err != nil {
				return err
			}
			if err := store.Load(c.Context); err != nil {
				return fmt.Errorf("load data: %w", err)
			}

			menu := console.NewMenu(os.Stdin, os.Stdout,
				services.NewUserService(store.Users()),
				services.NewEventService(store.Events()))
			if err := menu.Run(c.Context); err != nil {
				return err
			}

			// A failed save is reported but does not make the run fail; the
			// session itself completed normally.
			if err := store.Save(c.Context); err != nil {
				logger.Error("saving data failed", "error", err)
			}
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print all registered events, soonest first.",
		Action: func(c *cli.Context) error {
			_, store, err := setup(c)
			if err != nil {
				return err
			}
			if err := store.Load(c.Context); err != nil {
				return fmt.Errorf("load data: %w", err)
			}

			events, err := services.NewEventService(store.Events()).ListEvents(c.Context)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("No events registered.")
				return nil
			}
			now := time.Now()
			for _, e := range events {
				fmt.Printf("%s - %s - %s - %s [%s]\n",
					e.Name, e.Category, e.Address, e.StartTime.Format("02/01/2006 15:04"), e.StatusAt(now))
			}
			return nil
		},
	}
}

func setup(c *cli.Context) (*slog.Logger, *textfile.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if path := c.String("file"); path != "" {
		cfg.DataFile = path
	}
	logger := config.NewLogger(cfg.Environment)
	return logger, textfile.NewStore(cfg.DataFile, logger), nil
}
