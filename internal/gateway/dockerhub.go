// Package gateway provides gateways to the Docker Hub registry API and the Google
// Sheets API, abstracting away the underlying HTTP clients.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/naka-gawa/dockerhub-pulls/internal/domain"
	"golang.org/x/oauth2"
)

// RepositorySummary is one entry of the organization repository listing.
type RepositorySummary struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	PullCount int    `json:"pull_count"`
}

// Fetcher defines the behavior of a gateway for fetching repository information from the registry.
type Fetcher interface {
	ListRepositories(ctx context.Context, org string) ([]RepositorySummary, error)
	FetchRepository(ctx context.Context, org, name string) (*domain.Repository, error)
}

// DockerHubGateway is the concrete implementation of the Fetcher interface.
type DockerHubGateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type repositoryPage struct {
	Results []RepositorySummary `json:"results"`
	Next    *string             `json:"next"`
}

type repositoryDetail struct {
	Name            string `json:"name"`
	PullCount       int    `json:"pull_count"`
	FullDescription string `json:"full_description"`
}

// Login exchanges registry credentials for a token.
func Login(ctx context.Context, httpClient *http.Client, baseURL, username, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("failed to encode login request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(baseURL, "/")+"/v2/users/login/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var res loginResponse
	if err := doJSON(httpClient, req, &res); err != nil {
		return "", fmt.Errorf("failed to log in to registry: %w", err)
	}
	if res.Token == "" {
		return "", fmt.Errorf("failed to log in to registry: response carried no token")
	}
	return res.Token, nil
}

// NewDockerHubGateway is a constructor that logs in to the registry and returns a
// gateway whose requests carry the resulting token.
func NewDockerHubGateway(ctx context.Context, baseURL, username, password string, timeout time.Duration, logger *log.Logger) (Fetcher, error) {
	base := &http.Client{Timeout: timeout}
	logger.Println("[1/3] Logging in to the registry...")
	token, err := Login(ctx, base, baseURL, username, password)
	if err != nil {
		return nil, err
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "JWT"})
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Base:   http.DefaultTransport,
			Source: ts,
		},
	}
	return &DockerHubGateway{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// ListRepositories follows the paginated listing of an organization and returns every
// repository in page order.
func (g *DockerHubGateway) ListRepositories(ctx context.Context, org string) ([]RepositorySummary, error) {
	g.logger.Println("[2/3] Listing organization repositories...")
	next := fmt.Sprintf("%s/v2/repositories/%s/", g.baseURL, url.PathEscape(org))
	var repositories []RepositorySummary
	for next != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build repository listing request: %w", err)
		}
		var page repositoryPage
		if err := doJSON(g.httpClient, req, &page); err != nil {
			return nil, fmt.Errorf("failed to list repositories of %s: %w", org, err)
		}
		repositories = append(repositories, page.Results...)
		next = ""
		if page.Next != nil {
			next = *page.Next
			g.logger.Println("  Fetching next page of repositories...")
		}
	}
	g.logger.Printf("Completed listing %d repositories.\n", len(repositories))
	return repositories, nil
}

// FetchRepository fetches the pull count and description overview of one repository.
func (g *DockerHubGateway) FetchRepository(ctx context.Context, org, name string) (*domain.Repository, error) {
	endpoint := fmt.Sprintf("%s/v2/repositories/%s/%s/", g.baseURL, url.PathEscape(org), url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build repository request: %w", err)
	}
	var detail repositoryDetail
	if err := doJSON(g.httpClient, req, &detail); err != nil {
		return nil, fmt.Errorf("failed to fetch repository %s/%s: %w", org, name, err)
	}
	g.logger.Printf("  Fetched %s: %d pulls\n", name, detail.PullCount)
	return &domain.Repository{
		Name:      name,
		PullCount: detail.PullCount,
		Overview:  domain.ExtractOverview(detail.FullDescription),
	}, nil
}

// doJSON sends req and decodes a 2xx JSON response into out.
func doJSON(client *http.Client, req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: unexpected status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
