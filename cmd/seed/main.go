package main

import (
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/spanner"
	"github.com/urfave/cli/v2"

	"github.com/light-bringer/price-resolver/internal/app/price/repo"
	"github.com/light-bringer/price-resolver/internal/app/price/sampledata"
	"github.com/light-bringer/price-resolver/internal/config"
	"github.com/light-bringer/price-resolver/internal/obs"
)

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "load the reference prices for brand 1 and product 35455 into Spanner",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database",
				Value:   config.DefaultSpannerDatabase,
				EnvVars: []string{"SPANNER_DATABASE"},
				Usage:   "full Spanner database path",
			},
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
		},
		Action: func(c *cli.Context) error {
			obs.InitLogger(c.String("log-level"))

			client, err := spanner.NewClient(c.Context, c.String("database"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to create Spanner client: %v", err), 1)
			}
			defer client.Close()

			if err := sampledata.Load(c.Context, repo.NewSpannerStore(client)); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			slog.Info("sample prices loaded", "database", c.String("database"),
				"brand_id", sampledata.BrandID, "product_id", sampledata.ProductID)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("seed", "error", err)
		os.Exit(1)
	}
}
