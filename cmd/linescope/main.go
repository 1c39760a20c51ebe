package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"linescope/internal/config"
	"linescope/internal/imaging"
	"linescope/internal/pipeline"
	"linescope/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	dir := flag.String("dir", ".", "Directory containing images to browse")
	out := flag.String("out", "composite.png", "Path where the current composite is written")
	cfgPath := flag.String("config", "linescope.yaml", "Path to the YAML configuration file")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("linescope %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	// Logging goes to stderr; stdout carries command responses.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if os.Getenv("LINESCOPE_LOG_LEVEL") == "debug" {
		log.Printf("linescope v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if *writeConfig {
		if err := config.Save(config.Default(), *cfgPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("wrote %s\n", *cfgPath)
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	palette, err := render.PaletteFromHex(cfg.Markers.EdgeColor, cfg.Markers.LineColor, cfg.Markers.LineWidth)
	if err != nil {
		log.Fatalf("Invalid marker config: %v", err)
	}

	ids, err := listImages(*dir)
	if err != nil {
		log.Fatalf("Failed to list images in %s: %v", *dir, err)
	}

	analyzer, err := pipeline.New(ids, func(id string) ([]byte, error) {
		return os.ReadFile(filepath.Join(*dir, id))
	}, pipeline.Options{
		ViewportWidth:  cfg.Viewport.MaxWidth,
		ViewportHeight: cfg.Viewport.MaxHeight,
		Palette:        palette,
		Params:         cfg.Defaults,
	})
	if err != nil {
		log.Fatalf("Failed to open gallery: %v", err)
	}

	// Initial recompute so the first image is on screen immediately.
	if composite, err := analyzer.Recompute(); err != nil {
		log.Printf("initial recompute: %v", err)
	} else if err := writeComposite(composite, *out); err != nil {
		log.Printf("write composite: %v", err)
	}
	printStatus(analyzer)

	if err := run(analyzer, *out); err != nil {
		log.Fatalf("Command loop error: %v", err)
	}
}

// listImages enumerates the decodable raster files in dir, sorted by name
// so display order is stable across sessions.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// run reads commands from stdin until EOF or quit. Commands:
//
//	next | prev          navigate the gallery and recompute
//	set <name> <value>   update one parameter and recompute
//	params               print the current parameter set
//	current              print the active image identifier
//	render               recompute without changing anything
//	quit | exit          leave the loop
func run(analyzer *pipeline.Analyzer, out string) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "quit", "exit":
			return nil

		case "next", "prev":
			dir := pipeline.Next
			if fields[0] == "prev" {
				dir = pipeline.Previous
			}
			composite, err := analyzer.Navigate(dir)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			if err := writeComposite(composite, out); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			printStatus(analyzer)

		case "set":
			if len(fields) != 3 {
				fmt.Println("usage: set <name> <value>")
				continue
			}
			value, err := strconv.Atoi(fields[2])
			if err != nil {
				fmt.Printf("error: value %q is not an integer\n", fields[2])
				continue
			}
			params, err := analyzer.SetParameter(fields[1], value)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Printf("params: %+v\n", params)
			recomputeAndWrite(analyzer, out)

		case "params":
			fmt.Printf("params: %+v\n", analyzer.Parameters())

		case "current":
			fmt.Println(analyzer.CurrentImage())

		case "render":
			recomputeAndWrite(analyzer, out)

		default:
			fmt.Printf("unknown command %q (next, prev, set, params, current, render, quit)\n", fields[0])
		}
	}
	return scanner.Err()
}

func recomputeAndWrite(analyzer *pipeline.Analyzer, out string) {
	composite, err := analyzer.Recompute()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if err := writeComposite(composite, out); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	printStatus(analyzer)
}

func printStatus(analyzer *pipeline.Analyzer) {
	index, length := analyzer.Gallery()
	fmt.Printf("[%d/%d] %s\n", index+1, length, analyzer.CurrentImage())
}

func writeComposite(buf *imaging.Buffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, buf.ToImage()); err != nil {
		return fmt.Errorf("failed to encode composite: %w", err)
	}
	return nil
}
