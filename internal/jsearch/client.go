// Package jsearch is a client for the JSearch job search API on RapidAPI
package jsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
)

const (
	DefaultURL  = "https://jsearch.p.rapidapi.com/search"
	DefaultHost = "jsearch.p.rapidapi.com"
)

var ErrRateLimited = errors.New("jsearch: rate limited")

// StatusError is returned for any non-200 response
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jsearch: unexpected status %d: %s", e.Code, e.Body)
}

type Config struct {
	APIKey  string
	URL     string
	Host    string
	Timeout time.Duration
}

// Client implements job.Feed
type Client struct {
	cfg  Config
	http *http.Client
}

var _ job.Feed = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

type searchResponse struct {
	Status string        `json:"status"`
	Data   []postingJSON `json:"data"`
}

type postingJSON struct {
	JobID          string `json:"job_id"`
	Title          string `json:"job_title"`
	Employer       string `json:"employer_name"`
	City           string `json:"job_city"`
	Country        string `json:"job_country"`
	Description    string `json:"job_description"`
	ApplyLink      string `json:"job_apply_link"`
	EmploymentType string `json:"job_employment_type"`
	PostedAt       string `json:"job_posted_at_datetime_utc"`
}

func (p postingJSON) toPosting() job.Posting {
	out := job.Posting{
		ID:             kernel.NewJobID(p.JobID),
		Title:          p.Title,
		Company:        p.Employer,
		Location:       p.City,
		Country:        p.Country,
		Description:    p.Description,
		ApplyLink:      p.ApplyLink,
		EmploymentType: p.EmploymentType,
	}
	if t, err := time.Parse(time.RFC3339, p.PostedAt); err == nil {
		t = t.UTC()
		out.PostedAt = &t
	}
	return out
}

// Search fetches a single page of results
func (c *Client) Search(ctx context.Context, q job.FeedQuery) ([]job.Posting, error) {
	if !c.Configured() {
		return nil, job.ErrFeedNotConfigured()
	}

	params := url.Values{}
	params.Set("query", q.Query)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("num_pages", "1")
	if q.Country != "" {
		params.Set("country", q.Country)
	}
	if q.DatePosted != "" {
		params.Set("date_posted", q.DatePosted)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build jsearch request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.Host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode jsearch response: %w", err)
	}

	postings := make([]job.Posting, 0, len(payload.Data))
	for _, p := range payload.Data {
		postings = append(postings, p.toPosting())
	}
	return postings, nil
}
