package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNoCandidates is returned when the response body carries no candidates
// field at all. Callers treat it as "no usable answer" rather than a failure.
var ErrNoCandidates = errors.New("response has no candidates")

type Client struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewClient(apiURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type part struct {
	Text *string `json:"text,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type request struct {
	Contents []content `json:"contents"`
}

type candidate struct {
	Content *content `json:"content"`
}

type response struct {
	Candidates json.RawMessage `json:"candidates"`
}

// Generate sends prompt as the sole content of a generateContent call and
// returns the text of the first part of the first candidate.
//
// The HTTP status is not checked: error bodies have no candidates and
// surface as ErrNoCandidates.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(request{
		Contents: []content{{Parts: []part{{Text: &prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// The request URL carries the API key; report only the cause.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(apiResp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	var candidates []candidate
	if err := json.Unmarshal(apiResp.Candidates, &candidates); err != nil {
		return "", fmt.Errorf("unmarshal candidates: %w", err)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("empty candidates list")
	}
	first := candidates[0].Content
	if first == nil || len(first.Parts) == 0 {
		return "", fmt.Errorf("first candidate has no content parts")
	}
	if first.Parts[0].Text == nil {
		return "", fmt.Errorf("first part has no text")
	}
	return *first.Parts[0].Text, nil
}

func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
