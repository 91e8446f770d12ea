package match

import (
	"math/rand/v2"
	"time"
)

// --------------------------------------------------------------------------
// Roster — placeholder catalog used whenever real data is unavailable.
// IDs and logo URLs follow the provider's numbering so synthetic records
// render identically to real ones in the frontend.
// --------------------------------------------------------------------------

var liveRoster = []TeamRef{
	{ID: 119, Name: "Corinthians", Logo: "https://media.api-sports.io/football/teams/119.png"},
	{ID: 120, Name: "São Paulo", Logo: "https://media.api-sports.io/football/teams/120.png"},
	{ID: 124, Name: "Flamengo", Logo: "https://media.api-sports.io/football/teams/124.png"},
	{ID: 121, Name: "Santos", Logo: "https://media.api-sports.io/football/teams/121.png"},
}

var upcomingRoster = []TeamRef{
	{ID: 117, Name: "Palmeiras", Logo: "https://media.api-sports.io/football/teams/117.png"},
	{ID: 122, Name: "Grêmio", Logo: "https://media.api-sports.io/football/teams/122.png"},
	{ID: 123, Name: "Internacional", Logo: "https://media.api-sports.io/football/teams/123.png"},
	{ID: 118, Name: "Ferroviária", Logo: "https://media.api-sports.io/football/teams/118.png"},
	{ID: 119, Name: "Corinthians", Logo: "https://media.api-sports.io/football/teams/119.png"},
	{ID: 120, Name: "São Paulo", Logo: "https://media.api-sports.io/football/teams/120.png"},
}

var syntheticLeague = League{
	ID:   74,
	Name: "Brasileirão Feminino A1",
	Logo: "https://media.api-sports.io/football/leagues/74.png",
}

// Generator produces plausible synthetic fixtures from the fixed roster.
// Output is random across calls; only shape and invariants are stable.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a synthetic fixture generator.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// LiveFixture returns a single in-progress fixture kicking off "now".
func (g *Generator) LiveFixture() Record {
	home, away := pickPair(liveRoster)
	elapsed := 65
	homeGoals := rand.IntN(4)
	awayGoals := rand.IntN(3)

	return Record{
		Fixture: Fixture{
			ID:     syntheticFixtureID(),
			Date:   g.now().Format(time.RFC3339),
			Status: FixtureStatus{Short: StatusLive, Elapsed: &elapsed},
		},
		Teams:  Teams{Home: home, Away: away},
		Goals:  Goals{Home: &homeGoals, Away: &awayGoals},
		League: syntheticLeague,
	}
}

// UpcomingFixtures returns n scheduled fixtures in the next two weeks.
// Scores are nil because the matches have not kicked off.
func (g *Generator) UpcomingFixtures(n int) []Record {
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		home, away := pickPair(upcomingRoster)
		kickoff := g.now().AddDate(0, 0, 1+rand.IntN(14))

		records = append(records, Record{
			Fixture: Fixture{
				ID:     syntheticFixtureID(),
				Date:   kickoff.Format(time.RFC3339),
				Status: FixtureStatus{Short: StatusNotStarted},
			},
			Teams:  Teams{Home: home, Away: away},
			Goals:  Goals{},
			League: syntheticLeague,
		})
	}
	return records
}

// FixtureByID returns a live synthetic fixture carrying the requested id,
// so detail lookups degrade the same way list queries do.
func (g *Generator) FixtureByID(id int) Record {
	record := g.LiveFixture()
	record.Fixture.ID = id
	return record
}

// pickPair selects two distinct teams from a roster.
func pickPair(roster []TeamRef) (home, away TeamRef) {
	i := rand.IntN(len(roster))
	j := rand.IntN(len(roster) - 1)
	if j >= i {
		j++
	}
	return roster[i], roster[j]
}

func syntheticFixtureID() int {
	return 1000 + rand.IntN(9000)
}
