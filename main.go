package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"appScope/collector"
	"appScope/config"
	"appScope/converter"
	"appScope/processor"
	"appScope/sender"
)

func printWelcomeBanner(cfg *config.Config, item collector.TestItem, input string) {

	bannerLines := []string{
		"                     _____                      ",
		"  ____ _____  ____  / ___/_________  ____  ___  ",
		" / __ `/ __ \\/ __ \\ \\__ \\/ ___/ __ \\/ __ \\/ _ \\ ",
		"/ /_/ / /_/ / /_/ /___/ / /__/ /_/ / /_/ /  __/ ",
		"\\__,_/ .___/ .___//____/\\___/\\____/ .___/\\___/  ",
		"    /_/   /_/                    /_/            ",
	}

	// Print banner in orange color
	for _, line := range bannerLines {
		fmt.Println("\033[0;33m" + line + "\033[0m")
	}

	fmt.Print("https://github.com/everythings-gonna-be-alright\n\n")

	fmt.Println("🚀 Starting appScope with configuration:")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("🧪 Test Name:          %s\n", item.Name)
	fmt.Printf("📚 Test Module:        %s\n", item.Module)
	fmt.Printf("📝 Application Name:   %s\n", cfg.AppName)
	fmt.Printf("📄 Input Stream:       %s\n", input)
	fmt.Printf("📁 Output Directory:   %s\n", cfg.OutputDir)
	if cfg.PyroscopeURL != "" {
		fmt.Printf("📡 Pyroscope URL:      %s\n", cfg.PyroscopeURL)
	}
	fmt.Printf("🐛 Debug Mode:         %v\n", cfg.Debug)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
}

func main() {
	// Command line flags configuration
	// Core settings
	testName := flag.String("name", "", "Name of the traced test")
	testModule := flag.String("module", "", "Module containing the traced test")
	appName := flag.String("appName", "", "Application name for AppMap metadata")
	input := flag.String("input", "-", "Recorded notification stream (NDJSON), '-' for stdin")
	outputDir := flag.String("outputDir", "tmp/appmap", "Directory for AppMap documents")

	// Profile upload settings
	pyroscopeURL := flag.String("pyroscopeUrl", "", "Optional Pyroscope server for the session profile")
	authToken := flag.String("auth", "", "Authentication token for Pyroscope")
	rateHz := flag.Int("rateHz", 400, "Nominal rate hint recorded in the profile")

	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	if *testName == "" {
		fmt.Println("Error: test name is required")
		os.Exit(1)
	}

	if *appName == "" {
		fmt.Println("Error: app name is required")
		os.Exit(1)
	}

	cfg := config.NewDefault()
	cfg.AppName = *appName
	cfg.OutputDir = *outputDir
	cfg.PyroscopeURL = *pyroscopeURL
	cfg.AuthToken = *authToken
	cfg.RateHz = *rateHz
	cfg.Debug = *debug

	item := collector.TestItem{
		Name:   *testName,
		Module: *testModule,
	}

	// Print welcome banner with configuration
	printWelcomeBanner(cfg, item, *input)

	// Open the recorded notification stream
	var source io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			fmt.Printf("Error opening input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		source = f
	}

	// Set global debug flag
	processor.Debug = *debug

	// Initialize pipeline: replay reader feeding the event translator.
	// Recorded streams carry no live classes, so no introspector is wired.
	replay := collector.New(cfg, source)
	notifs, err := replay.Start()
	if err != nil {
		fmt.Printf("Error starting replay: %v\n", err)
		os.Exit(1)
	}

	proc := processor.New(cfg, item, nil)
	if err := proc.Process(notifs); err != nil {
		fmt.Printf("Error processing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("AppMap written to %s\n", proc.OutputPath())

	// Optionally ship the session profile to Pyroscope
	if cfg.PyroscopeURL != "" {
		prof := converter.ConvertCallsToPprof(proc.Records(), cfg.RateHz, cfg.Debug)
		if prof == nil {
			fmt.Println("No completed calls, skipping profile upload")
			return
		}

		s := sender.New(sender.Config{
			PyroscopeURL: cfg.PyroscopeURL,
			AuthToken:    cfg.AuthToken,
			AppName:      cfg.AppName,
		})
		if err := s.SendProfile(prof, converter.SampleTypeConfig); err != nil {
			fmt.Printf("Error sending profile: %v\n", err)
			os.Exit(1)
		}
	}
}
