package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gridsage/adapters/excel"
	"gridsage/adapters/stats/engine"
	"gridsage/app"
)

// Offline analysis of a spreadsheet or CSV file: reads Sheet1 (or the CSV
// grid) into a dataset and prints the full deep-analysis report as JSON.
func main() {
	filePath := flag.String("file", "", "path to .xlsx or .csv file")
	horizon := flag.Int("horizon", 0, "forecast horizon in periods (0 = default)")
	scenarios := flag.Bool("scenarios", false, "include standard what-if scenarios")
	keepFirstRow := flag.Bool("keep-first-row", false, "analyze the first row instead of skipping it as a header")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: cli -file data.xlsx [-horizon 3] [-scenarios]")
		os.Exit(2)
	}

	ds, err := excel.NewDataReader(*filePath).ReadDataset()
	if err != nil {
		log.Fatalf("failed to read %s: %v", *filePath, err)
	}

	service := app.NewAnalysisService(engine.NewEngine(), nil, nil)
	skipHeader := !*keepFirstRow
	report, err := service.DeepAnalysis(context.Background(), ds, app.DeepAnalysisParams{
		SkipHeader:      &skipHeader,
		ForecastHorizon: *horizon,
		Scenarios:       *scenarios,
	})
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode report: %v", err)
	}
	fmt.Println(string(out))
}
