package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/corehuman/wuxing-lab/internal/wuxing"
)

const version = "1.0.0-wuxing-lab"

func main() {
	// Define command line flags
	var (
		pretty   = flag.Bool("pretty", false, "Pretty print JSON output")
		rawJSON  = flag.Bool("raw-json", false, "Print only JSON to stdout (no extra text)")
		upToStep = flag.Int("up-to-step", -1, "Run only stages 1..N and dump the intermediate node points")
		showHelp = flag.Bool("help", false, "Show help information")
		showVer  = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] input.json\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Compute a Wu Xing point-flow analysis from a four-pillar chart\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s chart.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --pretty --raw-json chart.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --up-to-step 4 chart.json\n", os.Args[0])
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVer {
		fmt.Printf("wuxinggen version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: input file required\n")
		flag.Usage()
		os.Exit(1)
	}

	logger := newLogger()

	inputFile := args[0]
	inputData, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	var input wuxing.Input
	if err := json.Unmarshal(inputData, &input); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing input JSON: %v\n", err)
		os.Exit(1)
	}

	engine := wuxing.NewEngineWithLogger(logger)

	if *upToStep >= 0 {
		runPartial(engine, &input, *upToStep, *pretty)
		return
	}

	result, err := engine.Analyze(&input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing analysis: %v\n", err)
		os.Exit(1)
	}

	var jsonData []byte
	if *pretty {
		jsonData, err = json.MarshalIndent(result, "", "  ")
	} else {
		jsonData, err = json.Marshal(result)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
		os.Exit(1)
	}

	baseName := strings.TrimSuffix(inputFile, filepath.Ext(inputFile))
	outputFile := baseName + "_result.json"
	if err := os.WriteFile(outputFile, jsonData, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing result file: %v\n", err)
		os.Exit(1)
	}

	if *rawJSON {
		fmt.Print(string(jsonData))
		return
	}

	fmt.Printf("Chart code: %s\n", result.Code)
	fmt.Printf("Day Master: %s (%s, %.2f%%) - %s\n",
		result.DayMaster.Stem, result.DayMaster.Element,
		result.DayMaster.Percent, result.DayMaster.Strength)
	fmt.Printf("Roles: useful=%s favorable=%s unfavorable=%s enemy=%s idle=%s\n",
		result.Gods.Useful, result.Gods.Favorable,
		result.Gods.Unfavorable, result.Gods.Enemy, result.Gods.Idle)
	fmt.Printf("\nOutput written to %s\n", outputFile)
}

// runPartial executes the gated stage entry point and dumps the node points
// reached after the requested stage.
func runPartial(engine *wuxing.Engine, input *wuxing.Input, step int, pretty bool) {
	st, err := engine.AnalyzeUpToStep(input, step)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running stages: %v\n", err)
		os.Exit(1)
	}

	dump := make(map[string]float64, len(st.Nodes))
	for _, n := range st.Nodes {
		dump[string(n.ID)] = n.Points
	}

	var jsonData []byte
	if pretty {
		jsonData, err = json.MarshalIndent(dump, "", "  ")
	} else {
		jsonData, err = json.Marshal(dump)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling node points: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}

// newLogger builds the stderr console logger; WUXING_LOG_LEVEL selects the
// level and defaults to info.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if s := os.Getenv("WUXING_LOG_LEVEL"); s != "" {
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
