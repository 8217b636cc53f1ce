package lfanalytics

import (
	"sort"
	"time"
)

const topCountriesLimit = 5

// Summary est dérivé à la lecture, jamais persisté
type Summary struct {
	PageViews      int            `json:"page_views"`
	UniqueViews    int            `json:"unique_views"`
	TopCountries   []CountryCount `json:"top_countries"`
	RecentVisitors []Visitor      `json:"recent_visitors"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

type Visitor struct {
	Country   string    `json:"country"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

// Summarize calcule les agrégats sur un jeu d'événements ordonné du plus
// ancien au plus récent. Fonction pure du jeu d'événements, sans état
// caché, pour rester testable sur fixture.
//
// unique_views compte les chemins de page distincts, pas les sessions :
// comportement historique du tableau de bord, conservé tel quel.
func Summarize(events []Event, recentN int) Summary {
	summary := Summary{
		PageViews:      len(events),
		TopCountries:   []CountryCount{},
		RecentVisitors: []Visitor{},
	}

	paths := make(map[string]struct{})
	countryCount := make(map[string]int)
	var countryOrder []string

	for _, ev := range events {
		paths[ev.PagePath] = struct{}{}

		// Les événements sans pays résolu sont exclus du classement
		if ev.Country != "" {
			if _, seen := countryCount[ev.Country]; !seen {
				countryOrder = append(countryOrder, ev.Country)
			}
			countryCount[ev.Country]++
		}
	}
	summary.UniqueViews = len(paths)

	// Classement décroissant, égalités départagées par ordre de première
	// apparition, tronqué au top 5
	for _, country := range countryOrder {
		summary.TopCountries = append(summary.TopCountries, CountryCount{
			Country: country,
			Count:   countryCount[country],
		})
	}
	sort.SliceStable(summary.TopCountries, func(i, j int) bool {
		return summary.TopCountries[i].Count > summary.TopCountries[j].Count
	})
	if len(summary.TopCountries) > topCountriesLimit {
		summary.TopCountries = summary.TopCountries[:topCountriesLimit]
	}

	// Les N événements les plus récents avec pays et ville présents
	for i := len(events) - 1; i >= 0 && len(summary.RecentVisitors) < recentN; i-- {
		ev := events[i]
		if ev.Country != "" && ev.City != "" {
			summary.RecentVisitors = append(summary.RecentVisitors, Visitor{
				Country:   ev.Country,
				City:      ev.City,
				CreatedAt: ev.CreatedAt,
			})
		}
	}

	return summary
}

// SummarizeSince charge les événements de la fenêtre et applique Summarize
func (s *Service) SummarizeSince(windowStart time.Time, recentN int) (*Summary, error) {
	var events []Event
	err := s.db.Where("created_at >= ?", windowStart).
		Order("created_at asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	summary := Summarize(events, recentN)
	return &summary, nil
}
