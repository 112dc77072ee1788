package testdrafts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/commishtools/draftgrade/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete draft grading test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting draft grading test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("leagues", config.NumLeagues),
		logger.Int("leagueSize", config.LeagueSize),
		logger.Int("rounds", config.Rounds),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate league drafts
	drafts, err := generateDrafts(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("draft generation failed: %w", err)
	}

	// Step 3: Register member mappings
	if err := registerMembers(ctx, config, drafts); err != nil {
		return fmt.Errorf("member registration failed: %w", err)
	}

	// Step 4: Submit drafts concurrently
	if err := submitDrafts(ctx, config, drafts, stats); err != nil {
		return fmt.Errorf("draft submission failed: %w", err)
	}

	// Step 5: Wait for grading
	logger.Get().Info(ctx, "waiting for drafts to be graded", logger.String("wait", config.GradeWait.String()))
	time.Sleep(config.GradeWait)

	// Step 6: Retrieve grades concurrently
	grades, err := retrieveGrades(ctx, config, drafts, stats)
	if err != nil {
		return fmt.Errorf("grade retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifyResults(config, drafts, grades, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save drafts to file
	if err := saveDraftsToFile(ctx, config, drafts); err != nil {
		logger.Get().Warn(ctx, "failed to save drafts to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveDraftsToFile saves the generated drafts to a JSON file.
func saveDraftsToFile(ctx context.Context, config *Config, drafts []Submission) error {
	if len(drafts) == 0 {
		return fmt.Errorf("no drafts to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_drafts_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, draft := range drafts {
		jsonData, err := marshalJSON(draft)
		if err != nil {
			return fmt.Errorf("failed to marshal draft %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write draft %d: %w", i, err)
		}

		// Add comma except for last draft
		if i < len(drafts)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "drafts saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, draftsPerSecond float64

	if stats.DraftsSubmitted > 0 {
		successRate = float64(stats.DraftsSuccessful) / float64(stats.DraftsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		draftsPerSecond = float64(stats.DraftsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("leaguesGenerated", stats.LeaguesGenerated),
		logger.Int("draftsSubmitted", stats.DraftsSubmitted),
		logger.Int("draftsSuccessful", stats.DraftsSuccessful),
		logger.Int("draftsDuplicate", stats.DraftsDuplicate),
		logger.Int("draftsFailed", stats.DraftsFailed),
		logger.Int("leaguesGraded", stats.LeaguesGraded),
		logger.Int("gradesRetrieved", stats.GradesRetrieved),
		logger.Int("verificationErrors", stats.VerificationErrors),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("draftsPerSecond", draftsPerSecond))
}
