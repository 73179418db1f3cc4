package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sb6-assets/internal/batch"
	"sb6-assets/internal/config"
	"sb6-assets/internal/logging"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	assetDir := flag.String("assets", "", "Directory scanned for .sbm and .ktx files (default: .)")
	outputDir := flag.String("output", "", "Output directory for dumps and manifest (default: <assets>/out)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	alignment := flag.Int("align", 0, "KTX row alignment 1, 2, 4 or 8 (default: 4)")
	imageSize := flag.Bool("imagesize", false, "KTX levels carry a u32 imageSize prefix")
	noMips := flag.Bool("nomips", false, "Do not generate mip chains for single-level KTX files")
	dump := flag.Bool("dump", false, "Write every uncompressed KTX level as an image")
	format := flag.String("format", "", "Dump image format: webp or png (default: webp)")
	testN := flag.Int("test", 0, "Check only the first N files")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()
	logging.Setup(*verbose)

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	if err := cfg.Resolve(config.Flags{
		AssetDir:        *assetDir,
		OutputDir:       *outputDir,
		Workers:         *workers,
		RowAlignment:    *alignment,
		ImageSizePrefix: *imageSize,
		DumpFormat:      *format,
		Dump:            *dump,
		NoMips:          *noMips,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	files, err := batch.Collect(cfg.AssetDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *testN > 0 && *testN < len(files) {
		files = files[:*testN]
	}
	if len(files) == 0 {
		fmt.Println("No assets to check.")
		os.Exit(0)
	}

	fmt.Printf("SB6 asset audit: %s\n", cfg.AssetDir)
	fmt.Printf("Files: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		AssetDir:   cfg.AssetDir,
		OutputDir:  cfg.OutputDir,
		Workers:    cfg.Workers,
		KTX:        cfg.KTX(),
		Dump:       cfg.Dump,
		DumpFormat: cfg.DumpFormat,
		Progress:   2 * time.Second,
	}
	results := batch.Run(batchCfg, files)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	failed := batch.Failed(results)
	fmt.Printf("Valid: %d/%d\n", len(results)-len(failed), len(results))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		for _, r := range failed[:min(len(failed), 20)] {
			fmt.Printf("  %s: %s\n", r.Path, r.Error)
		}
	}

	if err := batch.EnsureOutput(batchCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, batchCfg, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}
