package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/urfave/cli/v2"

	"sensor-plotter/controller"
	"sensor-plotter/utils"
)

func main() {
	app := &cli.App{
		Name:  "sensor-plotter",
		Usage: "clean and chart environmental / gas sensor logs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "optional log file path (stderr is always included)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "write outputs here instead of next to the input CSV",
			},
		},
		Before: func(c *cli.Context) error {
			lvl, err := utils.ParseLogLevel(c.String("log-level"))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			utils.InitLogger(lvl, c.String("log"))
			utils.L().Debug("GOMAXPROCS=%d  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "render one chart per variant config",
				ArgsUsage: "<config.yaml>...",
				Action: forEachConfig(func(ctx context.Context, c *cli.Context, cfg *utils.PlotConfig) error {
					_, err := controller.NewPipelineController(cfg, c.String("out-dir")).Run(ctx)
					return err
				}),
			},
			{
				Name:      "report",
				Usage:     "print per-series statistics and alarm-level counts",
				ArgsUsage: "<config.yaml>...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "csv",
						Usage: "also write the summary of the last config to this CSV file",
					},
				},
				Action: forEachConfig(func(ctx context.Context, c *cli.Context, cfg *utils.PlotConfig) error {
					sums, err := controller.NewReportController(cfg).Summaries(ctx)
					if err != nil {
						return err
					}
					if err := controller.WriteText(os.Stdout, cfg.Name, sums); err != nil {
						return err
					}
					if path := c.String("csv"); path != "" {
						return controller.WriteCSV(path, sums)
					}
					return nil
				}),
			},
			{
				Name:      "export",
				Usage:     "write the cleaned / smoothed table as CSV",
				ArgsUsage: "<config.yaml>...",
				Action: forEachConfig(func(ctx context.Context, c *cli.Context, cfg *utils.PlotConfig) error {
					_, err := controller.NewExportController(cfg, c.String("out-dir")).Run(ctx)
					return err
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		utils.L().Fatal("%v", err)
	}
	utils.L().Close()
}

type configAction func(ctx context.Context, c *cli.Context, cfg *utils.PlotConfig) error

// forEachConfig loads every positional config path and runs fn on it, in
// order, stopping at the first failure. SIGINT/SIGTERM cancel the run.
func forEachConfig(fn configAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() == 0 {
			return cli.Exit("no config file given", 2)
		}
		ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		for _, path := range c.Args().Slice() {
			cfg, err := utils.LoadPlotConfig(path)
			if err != nil {
				return fmt.Errorf("load config %s: %w", path, err)
			}
			utils.L().Info("── %s  (%s)", cfg.Name, path)
			if err := fn(ctx, c, cfg); err != nil {
				return fmt.Errorf("%s: %w", cfg.Name, err)
			}
		}
		return nil
	}
}
