// Command smoketest exercises a running deployment end to end: it registers a
// throwaway user, requests a workout suggestion, and plans a session from it.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"github.com/mkoskela/liftapp/internal/logging"
	"github.com/mkoskela/liftapp/internal/suggest"
	"github.com/mkoskela/liftapp/internal/testhelpers"
)

const (
	requestTimeout = 10 * time.Second
	readyTimeout   = 60 * time.Second
	readyInterval  = 2 * time.Second
)

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) (*client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Timeout: requestTimeout},
	}, nil
}

func (c *client) waitForReady(ctx context.Context) error {
	deadline := time.Now().Add(readyTimeout)
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/healthy", nil)
		if err != nil {
			return fmt.Errorf("create readiness request: %w", err)
		}
		resp, err := c.http.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("service not ready after %s: %w", readyTimeout, err)
		}
		time.Sleep(readyInterval)
	}
}

func (c *client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}
	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

func run(ctx context.Context, c *client) error {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	if err := c.waitForReady(ctx); err != nil {
		return err
	}

	displayName := fmt.Sprintf("smoketest-%d", time.Now().UnixNano())
	if err := c.postJSON(ctx, "/api/register", map[string]string{"display_name": displayName}, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	var suggestion suggest.Suggestion
	if err := c.postJSON(ctx, "/api/suggestions", struct{}{}, &suggestion); err != nil {
		return fmt.Errorf("request suggestion: %w", err)
	}
	if len(suggestion.ExerciseIDs) == 0 {
		return fmt.Errorf("suggestion contains no exercises")
	}

	plan := map[string]any{
		"date":         time.Now().UTC().Format(time.DateOnly),
		"exercise_ids": suggestion.ExerciseIDs,
	}
	if err := c.postJSON(ctx, "/api/sessions", plan, nil); err != nil {
		return fmt.Errorf("plan session: %w", err)
	}

	if err := c.postJSON(ctx, "/api/logout", struct{}{}, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	hostname := os.Args[1]
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	start := time.Now()
	c, err := newClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = run(ctx, c); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoketest failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "smoketest passed", slog.Duration("duration", time.Since(start)))
}
