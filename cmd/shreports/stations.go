package main

import (
	"fmt"

	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

func (a *app) handleStations() {
	stations := a.stations.Stations()

	fmt.Println("Station Directory")
	fmt.Println("═════════════════════════════════════════════════════════════════")
	fmt.Printf("%-40s  %-8s  %10s  %8s\n", "Station", "ID", "Multiplier", "Tax %")
	fmt.Println("─────────────────────────────────────────────────────────────────")

	for _, s := range stations {
		fmt.Printf("%-40s  %-8s  %10s  %8s\n", s.Name, s.ID, s.TaxMultiplier.String(), ledger.TaxRate(s.TaxMultiplier).StringFixed(3))
	}

	fmt.Println("═════════════════════════════════════════════════════════════════")
	fmt.Printf("Total: %d station(s); unknown stations use %s\n", len(stations), a.stations.Fallback().String())
	if a.cfg.StationsFile != "" {
		fmt.Printf("Loaded from %s\n", a.cfg.StationsFile)
	}
}
