package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func timeMustParse(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return parsed
}

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		LeagueID:          74,
		Season:            2024,
		RequestsPerMinute: 6000,
		HTTPClient:        srv.Client(),
	}, nil)
	return c, srv
}

func TestProbePremiumDetected(t *testing.T) {
	t.Parallel()

	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leagues" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("search"); got != "women" {
			t.Errorf("search = %q", got)
		}
		if got := r.URL.Query().Get("season"); got != "2024" {
			t.Errorf("season = %q", got)
		}
		if got := r.Header.Get("x-rapidapi-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		w.Write([]byte(`{"results": 3, "errors": [], "response": []}`))
	})

	if !c.Probe(context.Background()) {
		t.Fatalf("expected premium access")
	}
}

func TestProbeFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"zero results", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": 0, "errors": [], "response": []}`))
		}},
		{"error marker", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": 1, "errors": {"token": "invalid key"}, "response": []}`))
		}},
		{"non-200", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>blocked</html>`))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, _ := testClient(t, tc.handler)
			if c.Probe(context.Background()) {
				t.Fatalf("expected probe to yield free mode")
			}
		})
	}
}

func TestProbeNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // connection refused from here on

	c := NewClient(Config{BaseURL: url, APIKey: "k", LeagueID: 74, Season: 2024, RequestsPerMinute: 6000}, nil)
	if c.Probe(context.Background()) {
		t.Fatalf("expected probe to yield free mode on network error")
	}
}

func TestLiveFixturesDecodes(t *testing.T) {
	t.Parallel()

	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("live"); got != "all" {
			t.Errorf("live = %q", got)
		}
		if got := r.URL.Query().Get("league"); got != "74" {
			t.Errorf("league = %q", got)
		}
		w.Write([]byte(`{
			"results": 1,
			"errors": [],
			"response": [{
				"fixture": {"id": 555, "date": "2026-08-30T18:00:00Z", "status": {"short": "LIVE", "elapsed": 42}},
				"teams": {"home": {"id": 119, "name": "Corinthians", "logo": "l1"}, "away": {"id": 120, "name": "São Paulo", "logo": "l2"}},
				"goals": {"home": 2, "away": 1},
				"league": {"id": 74, "name": "Brasileirão Feminino A1", "logo": "l3"}
			}]
		}`))
	})

	records, err := c.LiveFixtures(context.Background())
	if err != nil {
		t.Fatalf("LiveFixtures error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.Fixture.ID != 555 {
		t.Fatalf("fixture id = %d", r.Fixture.ID)
	}
	if r.Fixture.Status.Elapsed == nil || *r.Fixture.Status.Elapsed != 42 {
		t.Fatalf("elapsed = %v", r.Fixture.Status.Elapsed)
	}
	if r.Goals.Home == nil || *r.Goals.Home != 2 {
		t.Fatalf("home goals = %v", r.Goals.Home)
	}
	if r.Teams.Away.Name != "São Paulo" {
		t.Fatalf("away team = %q", r.Teams.Away.Name)
	}
}

func TestFixturesEmptyResultIsNotAnError(t *testing.T) {
	t.Parallel()

	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": 0, "errors": [], "response": []}`))
	})

	records, err := c.LiveFixtures(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records != nil {
		t.Fatalf("expected nil records, got %v", records)
	}
}

func TestFixturesErrorMarker(t *testing.T) {
	t.Parallel()

	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": 1, "errors": {"requests": "rate limit reached"}, "response": []}`))
	})

	if _, err := c.LiveFixtures(context.Background()); err == nil {
		t.Fatalf("expected error for provider error marker")
	}
}

func TestUpcomingFixturesQuery(t *testing.T) {
	t.Parallel()

	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("from") == "" || q.Get("to") == "" {
			t.Errorf("expected from/to dates, got %v", q)
		}
		if got := q.Get("status"); got != "NS" {
			t.Errorf("status = %q", got)
		}
		w.Write([]byte(`{"results": 0, "errors": [], "response": []}`))
	})

	from := timeMustParse(t, "2026-08-30T00:00:00Z")
	if _, err := c.UpcomingFixtures(context.Background(), from, from.AddDate(0, 0, 7)); err != nil {
		t.Fatalf("UpcomingFixtures error: %v", err)
	}
}
