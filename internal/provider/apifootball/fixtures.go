package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/passabola/passabola-data/internal/match"
)

const (
	probeTimeout   = 5 * time.Second
	fixtureTimeout = 10 * time.Second
)

// Probe checks once whether the configured key has premium (full-data)
// access by searching for a known women's league. Any failure — network
// error, timeout, non-200, zero results, or an error marker inside a 200 —
// yields false. Probe failures are never fatal: the caller continues in
// free mode.
func (c *Client) Probe(ctx context.Context) bool {
	params := url.Values{}
	params.Set("search", "women")
	params.Set("season", strconv.Itoa(c.season))

	resp, err := c.get(ctx, "/leagues", params, probeTimeout)
	if err != nil {
		c.logger.Info("entitlement probe failed, using free mode", "error", err)
		return false
	}
	if resp.Results == 0 || resp.hasErrors() {
		c.logger.Info("entitlement probe returned no data, using free mode",
			"results", resp.Results, "provider_errors", resp.hasErrors())
		return false
	}

	c.logger.Info("premium API access detected")
	return true
}

// LiveFixtures fetches current in-progress fixtures for the configured
// league and season. A clean response with no fixtures returns (nil, nil).
func (c *Client) LiveFixtures(ctx context.Context) ([]match.Record, error) {
	params := url.Values{}
	params.Set("live", "all")
	params.Set("league", strconv.Itoa(c.leagueID))
	params.Set("season", strconv.Itoa(c.season))

	return c.fixtures(ctx, params)
}

// UpcomingFixtures fetches not-started fixtures in [from, to) for the
// configured league and season.
func (c *Client) UpcomingFixtures(ctx context.Context, from, to time.Time) ([]match.Record, error) {
	params := url.Values{}
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	params.Set("league", strconv.Itoa(c.leagueID))
	params.Set("season", strconv.Itoa(c.season))
	params.Set("status", match.StatusNotStarted)

	return c.fixtures(ctx, params)
}

// FixtureByID fetches a single fixture.
func (c *Client) FixtureByID(ctx context.Context, id int) ([]match.Record, error) {
	params := url.Values{}
	params.Set("id", strconv.Itoa(id))

	return c.fixtures(ctx, params)
}

func (c *Client) fixtures(ctx context.Context, params url.Values) ([]match.Record, error) {
	resp, err := c.get(ctx, "/fixtures", params, fixtureTimeout)
	if err != nil {
		return nil, err
	}
	if resp.hasErrors() {
		return nil, fmt.Errorf("provider error marker: %s", truncate(resp.Errors, 200))
	}
	if resp.Results == 0 {
		return nil, nil
	}

	var records []match.Record
	if err := json.Unmarshal(resp.Response, &records); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return records, nil
}
