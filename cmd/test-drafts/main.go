package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/commishtools/draftgrade/internal/testdrafts"
)

// Default configuration constants.
const (
	defaultNumLeagues  = 100
	defaultLeagueSize  = 12
	defaultRounds      = 15
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultGradeWait   = 10 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numLeagues = flag.Int("leagues", defaultNumLeagues, "Number of leagues to generate and submit")
		leagueSize = flag.Int("size", defaultLeagueSize, "Teams per league")
		rounds     = flag.Int("rounds", defaultRounds, "Draft rounds per league")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		gradeWait  = flag.Duration("wait", defaultGradeWait, "How long to wait for grading before verification")
		outputFile = flag.String("output", "", "Output file for generated drafts (default: generated_drafts_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testdrafts.ShowHelp()
		return
	}

	// Setup logging
	if err := testdrafts.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testdrafts.Config{
		BaseURL:    *baseURL,
		NumLeagues: *numLeagues,
		LeagueSize: *leagueSize,
		Rounds:     *rounds,
		Workers:    *workers,
		Timeout:    *timeout,
		GradeWait:  *gradeWait,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the test
	if err := testdrafts.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
