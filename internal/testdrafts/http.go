package testdrafts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	return c.send(ctx, http.MethodPost, url, body)
}

// Put performs a PUT request with JSON body
func (c *HTTPClient) Put(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	return c.send(ctx, http.MethodPut, url, body)
}

func (c *HTTPClient) send(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// registerMembers PUTs each league's member mappings before submission.
func registerMembers(ctx context.Context, config *Config, drafts []Submission) error {
	log.Printf("Registering member mappings for %d leagues...", len(drafts))

	client := newHTTPClient(config.Timeout)
	for _, draft := range drafts {
		url := fmt.Sprintf("%s/leagues/%s/members", config.BaseURL, draft.LeagueID)
		resp, err := client.Put(ctx, url, map[string]any{"members": draft.Members})
		if err != nil {
			return fmt.Errorf("failed to register members for %s: %w", draft.LeagueID, err)
		}
		body, _ := readResponseBody(resp)
		if resp.StatusCode != StatusOK {
			return fmt.Errorf("member registration for %s failed with HTTP %d: %s", draft.LeagueID, resp.StatusCode, string(body))
		}
	}

	log.Printf("Member mappings registered")
	return nil
}

// submitDrafts submits drafts concurrently using worker pools
func submitDrafts(ctx context.Context, config *Config, drafts []Submission, stats *Stats) error {
	log.Printf("Submitting %d drafts with %d workers...", len(drafts), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/drafts"

	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	draftChan := make(chan Submission, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for draft := range draftChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleDraft(ctx, client, url, draft)

					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						atomic.AddInt64(&successful, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						log.Printf("progress: %d/%d submitted (success: %d, duplicate: %d, failed: %d)",
							atomic.LoadInt64(&submitted), len(drafts),
							atomic.LoadInt64(&successful), atomic.LoadInt64(&duplicate), atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	go func() {
		defer close(draftChan)
		for _, draft := range drafts {
			select {
			case <-ctx.Done():
				return
			case draftChan <- draft:
			}
		}
	}()

	wg.Wait()

	stats.DraftsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.DraftsSuccessful = int(atomic.LoadInt64(&successful))
	stats.DraftsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.DraftsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`Draft submission completed:
   Successful: %d
   Duplicate: %d
   Failed: %d
`, stats.DraftsSuccessful, stats.DraftsDuplicate, stats.DraftsFailed)

	return nil
}

// submitSingleDraft submits a single draft and returns the result
func submitSingleDraft(ctx context.Context, client *HTTPClient, url string, draft Submission) string {
	resp, err := client.Post(ctx, url, draft)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case StatusAccepted:
		var ack AckResponse
		if err := unmarshalJSON(body, &ack); err == nil && ack.Status == "accepted" {
			return "success"
		}
		return "success" // Assume success for 202 even if parsing fails
	case StatusOK:
		var ack AckResponse
		if err := unmarshalJSON(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate" // Assume duplicate for 200 even if parsing fails
	default:
		return "failed"
	}
}
