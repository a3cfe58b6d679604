package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/sysgrid/pkg/export"
	"github.com/dshills/sysgrid/pkg/loader"
	"github.com/dshills/sysgrid/pkg/simulator"
)

const version = "1.0.0"

var (
	specPath  = flag.String("spec", "", "Path to YAML/JSON specification file (required)")
	outputDir = flag.String("output", ".", "Output directory for generated files")
	format    = flag.String("format", "json", "Export format: json, svg, or all")
	verbose   = flag.Bool("verbose", false, "Enable verbose output")
	versionF  = flag.Bool("version", false, "Print version and exit")
	help      = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("sysgrid version %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if *specPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -spec flag is required")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if *verbose {
		fmt.Printf("Loading specification from %s\n", *specPath)
	}

	data, err := os.ReadFile(*specPath)
	if err != nil {
		return fmt.Errorf("failed to read spec: %w", err)
	}

	tree, errs, err := loader.LoadYAML(data)
	if err != nil {
		return fmt.Errorf("failed to load spec: %w", err)
	}
	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "Validation reported %d issue(s):\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  [%s] %s: %s\n", e.Kind, e.Path, e.Message)
		}
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	sim := simulator.NewSimulator(tree)

	start := time.Now()
	if *verbose {
		fmt.Println("Computing layout...")
	}

	if err := sim.Compute(ctx); err != nil {
		return fmt.Errorf("computation failed: %w", err)
	}

	elapsed := time.Since(start)
	if *verbose {
		fmt.Printf("Computation completed in %v\n", elapsed)
		printStats(sim)
	}

	baseName := strings.TrimSuffix(filepath.Base(*specPath), filepath.Ext(*specPath))

	if *format == "json" || *format == "all" {
		if err := exportJSON(sim, baseName); err != nil {
			return err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(sim, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully computed layout for %s in %v\n", *specPath, elapsed)
	return nil
}

func exportJSON(sim *simulator.Simulator, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("Exporting JSON to %s\n", filename)
	}
	if err := export.SaveJSONToFile(sim, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func exportSVG(sim *simulator.Simulator, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}
	if err := export.SaveSVGToFile(sim, filename, export.DefaultSVGOptions()); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func printStats(sim *simulator.Simulator) {
	b := sim.Boundaries()
	fmt.Println("\nLayout Statistics:")
	fmt.Printf("  Grid size: %dx%d\n", b.Rect.Width, b.Rect.Height)
	fmt.Printf("  Subsystems: %d\n", len(sim.Tree().All())-1)
	fmt.Printf("  Links: %d\n", len(sim.Tree().Links))
	fmt.Printf("  Flows: %d\n", len(sim.Tree().Flows))
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: sysgrid -spec <system.yaml> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'sysgrid -help' for detailed help")
}

func printHelp() {
	fmt.Printf("sysgrid version %s\n\n", version)
	fmt.Println("A command-line tool for laying out and routing declarative system diagrams.")
	fmt.Println("\nUsage:")
	fmt.Println("  sysgrid -spec <system.yaml> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -spec string")
	fmt.Println("        Path to YAML/JSON specification file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, svg, or all (default: json)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Compute layout with default JSON export")
	fmt.Println("  sysgrid -spec system.yaml")
	fmt.Println("\n  # Compute layout with both export formats")
	fmt.Println("  sysgrid -spec system.yaml -format all -output ./out")
	fmt.Println("\n  # Compute layout with an SVG visualization and verbose output")
	fmt.Println("  sysgrid -spec system.yaml -format svg -verbose")
}
