// Package exercisedb fetches exercise records from the remote catalog,
// caches them per muscle identifier and aggregates them per muscle group.
package exercisedb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/claude/webfit/internal/models"
)

// DefaultBaseURL is the public ExerciseDB endpoint.
const DefaultBaseURL = "https://www.exercisedb.dev"

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeMuscle turns a canonical muscle identifier into the form used for
// cache keys and request paths: lowercased, trimmed, with internal
// whitespace encoded as %20.
func NormalizeMuscle(muscle string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(strings.ToLower(muscle)), "%20")
}

// Client performs the single read-only request the catalog exposes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client targeting baseURL. A nil httpClient uses
// http.DefaultClient, so the transport's own timeouts apply.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchMuscle requests the exercises for an already normalized muscle
// identifier. Non-200 responses and transport failures are errors; a body of
// an unexpected shape decodes to an empty list.
func (c *Client) FetchMuscle(ctx context.Context, muscle string) ([]models.ExerciseRecord, error) {
	u := c.baseURL + "/api/v1/muscles/" + muscle + "/exercises?offset=0&limit=100&includeSecondary=false"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("exercisedb: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exercisedb: %s: %w", muscle, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("exercisedb: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("exercisedb: %s returned %d", muscle, resp.StatusCode)
	}

	return DecodeExercises(body), nil
}
