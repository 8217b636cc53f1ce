package lfanalytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureEvents() []Event {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	specs := []struct {
		path    string
		country string
		city    string
	}{
		{"/", "US", "New York"},
		{"/post/go", "US", "Boston"},
		{"/", "IN", "Mumbai"},
		{"/post/go", "UK", "London"},
		{"/post/web", "US", ""},
		{"/", "IN", "Delhi"},
		{"/post/go", "", ""},
		{"/about", "UK", "Leeds"},
		{"/", "IN", "Mumbai"},
		{"/post/web", "US", "Austin"},
	}

	events := make([]Event, 0, len(specs))
	for i, s := range specs {
		events = append(events, Event{
			PagePath:  s.path,
			SessionID: "s1",
			Country:   s.country,
			City:      s.city,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return events
}

func TestSummarizeCounts(t *testing.T) {
	summary := Summarize(fixtureEvents(), 3)

	assert.Equal(t, 10, summary.PageViews)
	// unique_views compte les chemins distincts : /, /post/go, /post/web, /about
	assert.Equal(t, 4, summary.UniqueViews)
}

func TestSummarizeTopCountries(t *testing.T) {
	summary := Summarize(fixtureEvents(), 3)

	// Le pays vide est exclu du classement
	require.Len(t, summary.TopCountries, 3)
	assert.Equal(t, CountryCount{Country: "US", Count: 4}, summary.TopCountries[0])
	assert.Equal(t, CountryCount{Country: "IN", Count: 3}, summary.TopCountries[1])
	assert.Equal(t, CountryCount{Country: "UK", Count: 2}, summary.TopCountries[2])
}

func TestSummarizeTopCountriesTiesAndTruncation(t *testing.T) {
	base := time.Now()
	var events []Event
	// 6 pays à 1 vue chacun : égalité départagée par ordre de première
	// apparition, tronqué à 5
	for i, country := range []string{"FR", "DE", "ES", "IT", "PT", "BE"} {
		events = append(events, Event{
			PagePath:  "/",
			Country:   country,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	summary := Summarize(events, 0)
	require.Len(t, summary.TopCountries, 5)
	assert.Equal(t, "FR", summary.TopCountries[0].Country)
	assert.Equal(t, "PT", summary.TopCountries[4].Country)
}

func TestSummarizeRecentVisitors(t *testing.T) {
	summary := Summarize(fixtureEvents(), 3)

	// Les plus récents d'abord, pays ET ville requis
	require.Len(t, summary.RecentVisitors, 3)
	assert.Equal(t, "Austin", summary.RecentVisitors[0].City)
	assert.Equal(t, "Mumbai", summary.RecentVisitors[1].City)
	assert.Equal(t, "Leeds", summary.RecentVisitors[2].City)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, 5)

	assert.Equal(t, 0, summary.PageViews)
	assert.Equal(t, 0, summary.UniqueViews)
	assert.Empty(t, summary.TopCountries)
	assert.Empty(t, summary.RecentVisitors)
	// Tranches vides, jamais nil : le JSON du tableau de bord reste stable
	assert.NotNil(t, summary.TopCountries)
	assert.NotNil(t, summary.RecentVisitors)
}
