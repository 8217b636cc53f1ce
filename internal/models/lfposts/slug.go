package lfposts

import (
	"regexp"
	"strings"
)

var reSlug = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug dérive un slug URL-safe depuis un titre : minuscules,
// chaque séquence hors [a-z0-9] devient un seul tiret, tirets de bord
// supprimés. Pure et totale ; un titre vide ou tout en ponctuation donne
// une chaîne vide, à rejeter en validation avant persistance.
func GenerateSlug(title string) string {
	s := strings.ToLower(title)
	s = reSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
