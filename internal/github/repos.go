package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

const perPage = 100

var (
	// ErrOrgNotFound means the organization doesn't exist or is private.
	ErrOrgNotFound = errors.New("organization not found or private")
	// ErrRateLimited means the API refused the request (403).
	ErrRateLimited = errors.New("GitHub API rate limit exceeded, set GITHUB_TOKEN for higher limits")
)

// ListOrgRepos pages through /orgs/{org}/repos until an empty page. A failure
// on the first page is returned; a failure on a later page ends the listing
// with what was collected so far.
func (c *Client) ListOrgRepos(ctx context.Context, org string) ([]Repo, error) {
	var all []Repo
	for page := 1; ; page++ {
		repos, err := c.fetchPage(ctx, org, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			c.logger.Warn("stopping pagination after error", zap.Int("page", page), zap.Error(err))
			break
		}
		if len(repos) == 0 {
			break
		}
		c.logger.Debug("fetched repository page", zap.Int("page", page), zap.Int("count", len(repos)))
		for i := range repos {
			repos[i].Source = SourceAPI
		}
		all = append(all, repos...)
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, org string, page int) ([]Repo, error) {
	u := fmt.Sprintf("%s/orgs/%s/repos?per_page=%d&page=%d", c.baseURL, url.PathEscape(org), perPage, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "orgbuild")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching repositories: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", org, ErrOrgNotFound)
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var repos []Repo
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, fmt.Errorf("parsing repositories JSON: %w", err)
	}
	return repos, nil
}
