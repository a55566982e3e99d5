package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Seemabie/SH-Reports-App/internal/archive"
	"github.com/Seemabie/SH-Reports-App/internal/config"
	"github.com/Seemabie/SH-Reports-App/internal/ledger"
	"github.com/Seemabie/SH-Reports-App/internal/parser"
	"github.com/Seemabie/SH-Reports-App/internal/sheet"
)

// runOptions are the flags shared by generate and compute
type runOptions struct {
	sheetPath   string
	departments string
	seed        uint64
	seedSet     bool
}

// prepared is a finished pipeline run with everything that produced it
type prepared struct {
	sheet       *sheet.Sheet
	station     config.StationProfile
	inputs      ledger.Inputs
	result      *ledger.Result
	source      ledger.Source
	seed        uint64
	tableSource string
	tableHash   string
	warnings    []string
}

// prepare loads the run sheet and department table and runs the pipeline.
func (a *app) prepare(opts runOptions) (*prepared, error) {
	if opts.sheetPath == "" {
		return nil, fmt.Errorf("--sheet is required")
	}

	s, err := sheet.Load(opts.sheetPath)
	if err != nil {
		return nil, err
	}

	p := &prepared{sheet: s}
	p.warnings = append(p.warnings, s.Warnings()...)

	rows, err := a.loadDepartments(opts, s, p)
	if err != nil {
		return nil, err
	}

	p.station = a.stations.Lookup(s.Station)
	if !p.station.Known {
		p.warnings = append(p.warnings, fmt.Sprintf("station %q is not in the directory; using tax multiplier %s",
			s.Station, p.station.TaxMultiplier.String()))
	}

	switch {
	case opts.seedSet:
		p.seed = opts.seed
	case a.cfg.RandomSeedSet:
		p.seed = a.cfg.RandomSeed
	default:
		p.seed = uint64(time.Now().UnixNano())
	}
	p.source = ledger.NewSource(p.seed)

	a.log.WithFields(logrus.Fields{
		"station":    p.station.Name,
		"multiplier": p.station.TaxMultiplier.String(),
		"seed":       p.seed,
		"rows":       len(rows),
		"table":      p.tableSource,
	}).Info("running ledger pipeline")

	p.inputs = s.Inputs(p.station)
	p.result = ledger.Run(rows, p.inputs, ledger.Options{
		Source:    p.source,
		PayOutMin: a.cfg.PayOutMin,
		PayOutMax: a.cfg.PayOutMax,
	})

	a.log.WithFields(logrus.Fields{
		"rescaled":  p.result.Rescale.Applied,
		"factor":    p.result.Rescale.Factor.String(),
		"merch_net": p.result.Totals.MerchNet.StringFixed(2),
		"fuel":      p.result.FuelTotal.StringFixed(2),
		"pay_out":   p.result.Payments.PayOut.StringFixed(2),
		"cash":      p.result.Payments.Cash.StringFixed(2),
	}).Debug("pipeline finished")

	for _, w := range p.result.Warnings {
		a.log.Warn(w)
	}
	p.warnings = append(p.warnings, p.result.Warnings...)

	return p, nil
}

// loadDepartments picks the table from the flag, then the sheet, then the
// built-in defaults. A relative sheet entry is resolved against the
// sheet's directory.
func (a *app) loadDepartments(opts runOptions, s *sheet.Sheet, p *prepared) ([]ledger.DepartmentRow, error) {
	path := opts.departments
	if path == "" && s.Departments != "" {
		path = s.Departments
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(opts.sheetPath), path)
		}
	}
	if path == "" {
		p.tableSource = "built-in"
		return ledger.DefaultDepartments(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening department table: %w", err)
	}
	defer file.Close()

	result, err := parser.NewTableParser().ParseDepartments(file, path)
	if err != nil {
		return nil, err
	}
	if len(result.Rows) == 0 {
		return nil, fmt.Errorf("department table %s has no rows", path)
	}

	for _, w := range result.Warnings {
		a.log.WithField("file", path).Warn(w)
	}
	p.warnings = append(p.warnings, result.Warnings...)

	p.tableSource = path
	p.tableHash, err = archive.HashFile(path)
	if err != nil {
		return nil, err
	}

	return result.Rows, nil
}

// isFlagSet reports whether the named flag was given on the command line
func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// truncate shortens s to maxLen runes, ending in an ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("⚠️  Warnings:")
	for _, w := range warnings {
		fmt.Printf("   - %s\n", w)
	}
}
