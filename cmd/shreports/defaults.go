package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Seemabie/SH-Reports-App/internal/ledger"
	"github.com/Seemabie/SH-Reports-App/internal/parser"
)

func (a *app) handleDefaults(args []string) {
	fs := flag.NewFlagSet("defaults", flag.ExitOnError)
	output := fs.String("output", "", "write to FILE instead of stdout")
	fs.Parse(args)

	rows := ledger.DefaultDepartments()

	var w io.Writer = os.Stdout
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			fmt.Printf("❌ Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		w = file
	}

	if err := parser.WriteDepartments(w, rows); err != nil {
		fmt.Printf("❌ Error writing departments: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		fmt.Printf("✅ Wrote %d departments to %s\n", len(rows), *output)
		fmt.Println()
		fmt.Println("💡 Edit the file and pass it to generate with --departments")
	}
}
