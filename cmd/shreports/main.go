package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Seemabie/SH-Reports-App/internal/config"
	"github.com/Seemabie/SH-Reports-App/internal/logging"
)

const usage = `SH Reports - station department and accountant reports

Usage:
  shreports generate --sheet FILE [--departments FILE] [--out DIR] [--seed N]
                                            Build both PDF reports for a run sheet
  shreports compute --sheet FILE [--departments FILE] [--seed N] [--json]
                                            Print the reconciled ledger without writing PDFs
  shreports stations                        List known stations and tax rates
  shreports defaults [--output FILE]        Write the built-in department table as CSV
  shreports list [--limit N]                List archived report runs

Run Sheet:
  A YAML, JSON or TOML file with the station, period, tobacco totals,
  desired merch sale, fuel products, payments and ending inventory.
  Department data comes from --departments, the sheet's "departments"
  entry, or the built-in table, in that order. CSV, XLSX and XLS are read.

Configuration (environment or .env):
  OUTPUT_DIR               Where generate writes PDFs (default: .)
  PAYOUT_MIN, PAYOUT_MAX   Pay-out range (default: 3000 to 9000)
  RANDOM_SEED              Fixed seed for synthesized figures (default: clock)
  STATIONS_FILE            YAML file replacing the built-in station table
  DATABASE_URL             Postgres URL; enables the run archive
  LOG_LEVEL, ENV           Logging level and format (dev or prod)

Examples:
  shreports generate --sheet week-10.yaml
  shreports generate --sheet week-10.yaml --departments dept.xlsx --out reports/
  shreports compute --sheet week-10.yaml --seed 42 --json
  shreports defaults --output departments.csv
  shreports list --limit 5
`

// app carries what every command needs
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	stations *config.Directory
}

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	if command == "help" || command == "-h" || command == "--help" {
		fmt.Print(usage)
		return
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(os.Stderr, cfg.Env, cfg.LogLevel)

	stations, err := cfg.Directory()
	if err != nil {
		fmt.Printf("❌ Error loading stations: %v\n", err)
		os.Exit(1)
	}

	a := &app{cfg: cfg, log: log, stations: stations}
	ctx := context.Background()

	switch command {
	case "generate":
		a.handleGenerate(ctx, os.Args[2:])
	case "compute":
		a.handleCompute(os.Args[2:])
	case "stations":
		a.handleStations()
	case "defaults":
		a.handleDefaults(os.Args[2:])
	case "list":
		a.handleList(ctx, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
