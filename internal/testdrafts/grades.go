package testdrafts

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// retrieveGrades fetches every league's grades concurrently.
func retrieveGrades(ctx context.Context, config *Config, drafts []Submission, stats *Stats) (map[string][]GradeRecord, error) {
	log.Printf("Retrieving grades for %d leagues with %d workers...", len(drafts), config.Workers)

	client := newHTTPClient(config.Timeout)

	var mu sync.Mutex
	grades := make(map[string][]GradeRecord, len(drafts))

	var (
		retrieved int64
		failed    int64
	)

	leagueChan := make(chan string, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for leagueID := range leagueChan {
				select {
				case <-ctx.Done():
					return
				default:
					records, err := retrieveLeagueGrades(ctx, client, config.BaseURL, leagueID)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("failed to get grades for %s: %v", leagueID, err)
						}
						continue
					}

					mu.Lock()
					grades[leagueID] = records
					mu.Unlock()
					atomic.AddInt64(&retrieved, int64(len(records)))
				}
			}
		}()
	}

	go func() {
		defer close(leagueChan)
		for _, draft := range drafts {
			select {
			case <-ctx.Done():
				return
			case leagueChan <- draft.LeagueID:
			}
		}
	}()

	wg.Wait()

	stats.LeaguesGraded = len(grades)
	stats.GradesRetrieved = int(atomic.LoadInt64(&retrieved))

	log.Printf(`Grade retrieval completed:
   Leagues graded: %d
   Grades retrieved: %d
   Failed leagues: %d
`, stats.LeaguesGraded, stats.GradesRetrieved, int(atomic.LoadInt64(&failed)))

	return grades, nil
}

// retrieveLeagueGrades fetches one league's grade list.
func retrieveLeagueGrades(ctx context.Context, client *HTTPClient, baseURL, leagueID string) ([]GradeRecord, error) {
	url := fmt.Sprintf("%s/leagues/%s/grades", baseURL, leagueID)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var records []GradeRecord
	if err := unmarshalJSON(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return records, nil
}
