package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Seemabie/SH-Reports-App/internal/archive"
	"github.com/Seemabie/SH-Reports-App/internal/report"
)

func (a *app) handleGenerate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	sheetPath := fs.String("sheet", "", "run sheet (yaml, json or toml)")
	departments := fs.String("departments", "", "department table (csv, xlsx or xls)")
	outDir := fs.String("out", "", "output directory (default: OUTPUT_DIR)")
	seed := fs.Uint64("seed", 0, "seed for synthesized figures (default: RANDOM_SEED or clock)")
	fs.Parse(args)

	if *outDir == "" {
		*outDir = a.cfg.OutputDir
	}

	fmt.Println("Generating reports...")
	fmt.Printf("  Run sheet: %s\n", *sheetPath)
	fmt.Println()

	p, err := a.prepare(runOptions{sheetPath: *sheetPath, departments: *departments, seed: *seed, seedSet: isFlagSet(fs, "seed")})
	if err != nil {
		fmt.Printf("❌ Error preparing run: %v\n", err)
		os.Exit(1)
	}

	open, closeDate := p.sheet.Period()
	run := report.Run{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now(),
		Station:     p.station,
		OpenDate:    open,
		CloseDate:   closeDate,
		Inputs:      p.inputs,
		Result:      p.result,
		Inventory: report.Inventory{
			Regular: p.sheet.Inventory.Regular,
			Super:   p.sheet.Inventory.Super,
			Diesel:  p.sheet.Inventory.Diesel,
		},
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Printf("❌ Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	renderer := report.NewPDFRenderer()
	mainReport := report.BuildMainReport(run, report.GenerateExtras(p.source))
	accountant := report.BuildAccountantReport(run)

	mainPath := filepath.Join(*outDir, report.MainFilename(p.station.Name, open))
	if err := writeReport(mainPath, func(f *os.File) error { return renderer.RenderMain(f, mainReport) }); err != nil {
		fmt.Printf("❌ Error rendering main report: %v\n", err)
		os.Exit(1)
	}

	accountantPath := filepath.Join(*outDir, report.AccountantFilename(p.station.Name, open))
	if err := writeReport(accountantPath, func(f *os.File) error { return renderer.RenderAccountant(f, accountant) }); err != nil {
		fmt.Printf("❌ Error rendering accountant report: %v\n", err)
		os.Exit(1)
	}

	absMain, _ := filepath.Abs(mainPath)
	absAccountant, _ := filepath.Abs(accountantPath)
	fmt.Printf("✅ Main report:       %s\n", absMain)
	fmt.Printf("✅ Accountant report: %s\n", absAccountant)
	fmt.Println()

	res := p.result
	fmt.Println("📊 Run Summary:")
	fmt.Printf("   • Station %s (%s), tax rate %s%%\n", p.station.Name, mainReport.Header.StationID, res.Tax.Rate.String())
	fmt.Printf("   • %s merchandise, %s fuel, %s sales tax\n",
		formatCurrency(res.Totals.MerchNet), formatCurrency(res.FuelTotal), formatCurrency(res.Tax.SalesTax))
	fmt.Printf("   • %s total MOP sales, %s pay out, %s cash\n",
		formatCurrency(res.Payments.TotalPaymentSales), formatCurrency(res.Payments.PayOut), formatCurrency(res.Payments.Cash))
	fmt.Printf("   • Seed %d (rerun with --seed %d for the same figures)\n", p.seed, p.seed)
	if res.Payments.Balanced {
		fmt.Println("   • ✅ MOP amounts balance after pay out")
	}

	printWarnings(p.warnings)

	if !a.cfg.ArchiveEnabled() {
		return
	}

	rec := &archive.Run{
		ID:        uuid.MustParse(run.ID),
		Station:   p.station.Name,
		StationID: p.station.ID,
		OpenDate:  open,
		CloseDate: closeDate,
		Seed:      p.seed,
		InputHash: p.tableHash,
		MerchNet:  res.Totals.MerchNet,
		FuelTotal: res.FuelTotal,
		SalesTax:  res.Tax.SalesTax,
		MOPTotal:  res.Payments.TotalPaymentSales,
		PayOut:    res.Payments.PayOut,
		Cash:      res.Payments.Cash,
		Balanced:  res.Payments.Balanced,
	}
	written := []archive.File{{Kind: "main", Path: absMain}, {Kind: "accountant", Path: absAccountant}}
	for _, f := range written {
		sum, err := archive.HashFile(f.Path)
		if err != nil {
			a.log.WithError(err).WithField("path", f.Path).Warn("could not hash report")
			continue
		}
		f.SHA256 = sum
		rec.Files = append(rec.Files, f)
	}

	if err := a.archiveRun(ctx, rec); err != nil {
		a.log.WithError(err).Error("archiving run failed")
		fmt.Println()
		fmt.Printf("⚠️  Reports were written but the run was not archived: %v\n", err)
		return
	}

	a.log.WithFields(logrus.Fields{"run_id": rec.ID, "files": len(rec.Files)}).Info("run archived")
}

func (a *app) archiveRun(ctx context.Context, rec *archive.Run) error {
	store, err := archive.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(ctx, rec)
}

func writeReport(path string, render func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := render(file); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}

	return file.Close()
}

func formatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return fmt.Sprintf("($%s)", amount.Neg().StringFixed(2))
	}
	return fmt.Sprintf("$%s", amount.StringFixed(2))
}
