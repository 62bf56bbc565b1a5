package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/vertexml/inferbridge/internal/config"
	"github.com/vertexml/inferbridge/internal/logger"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	var cfg *config.Config
	var rootLogger *zap.Logger

	app := &cli.App{
		Name:  "inferbridge",
		Usage: "Utilities for the native inference server bridge",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Value:       "config.yaml",
				Usage:       "Path to the inferbridge config file",
				EnvVars:     []string{"INFERBRIDGE_CONFIG"},
				Destination: &configPath,
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			zapLogger, err := logger.New(cfg.Logger.Verbosity)
			if err != nil {
				return err
			}
			rootLogger = zapLogger.Named("inferbridge")
			return nil
		},
		Commands: []*cli.Command{
			selfcheckCommand(&cfg, &rootLogger),
			serveCommand(&cfg, &rootLogger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
