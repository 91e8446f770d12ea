// Package match implements the hybrid fixture aggregation layer: live and
// upcoming matches come from the real provider when premium access is
// available, and from the synthetic generator otherwise.
package match

// --------------------------------------------------------------------------
// Status shorts — the provider's fixture status codes kept on the wire
// --------------------------------------------------------------------------

const (
	StatusNotStarted = "NS"
	StatusLive       = "LIVE"
	StatusFinished   = "FT"
)

// Envelope source markers.
const (
	SourceAPI   = "api"
	SourceMock  = "mock"
	SourceError = "error"
)

// Envelope mode markers.
const (
	ModePremium = "premium"
	ModeFree    = "free"
)

// --------------------------------------------------------------------------
// Wire types — mirror the API-Football fixture shape consumed by the
// frontend, so provider responses pass through unchanged
// --------------------------------------------------------------------------

// TeamRef identifies one side of a fixture.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// FixtureStatus carries the status short code plus elapsed minutes when live.
type FixtureStatus struct {
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed,omitempty"`
}

// Fixture holds fixture identity and timing.
type Fixture struct {
	ID     int           `json:"id"`
	Date   string        `json:"date"`
	Status FixtureStatus `json:"status"`
}

// Teams pairs the two sides of a fixture.
type Teams struct {
	Home TeamRef `json:"home"`
	Away TeamRef `json:"away"`
}

// Goals is the score pair. Both sides are nil before kickoff.
type Goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// League carries competition metadata.
type League struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Record is a normalized fixture as returned to callers.
// Invariant: Goals are non-nil only when the status is live or finished.
type Record struct {
	Fixture Fixture `json:"fixture"`
	Teams   Teams   `json:"teams"`
	Goals   Goals   `json:"goals"`
	League  League  `json:"league"`
}

// Envelope wraps every aggregator response with provenance metadata.
// Invariant: Success=false implies empty Data and Source="error".
type Envelope struct {
	Success bool     `json:"success"`
	Data    []Record `json:"data"`
	Count   int      `json:"count"`
	Source  string   `json:"source"`
	Mode    string   `json:"mode"`
}
