package lfmarkdown

import (
	"regexp"
	"strings"
)

// Rendu Markdown contraint des articles, compatible avec l'éditeur :
// chaque règle est appliquée une seule fois, globalement, dans un ordre
// fixe, sans re-parsing récursif. Les limitations (pas d'imbrication,
// <li> indépendants, blockquote ligne par ligne) sont volontaires.
var (
	reBold   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reItalic = regexp.MustCompile(`\*(.*?)\*`)
	reLink   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	reCode   = regexp.MustCompile("`([^`]+)`")
	reImage  = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	reQuote  = regexp.MustCompile(`(?m)^> (.+)$`)
	reList   = regexp.MustCompile(`(?m)^- (.+)$`)
)

func renderInline(src string) string {
	out := reBold.ReplaceAllString(src, "<strong>${1}</strong>")
	out = reItalic.ReplaceAllString(out, "<em>${1}</em>")
	out = reLink.ReplaceAllString(out, `<a href="${2}" target="_blank" rel="noopener noreferrer">${1}</a>`)
	out = reCode.ReplaceAllString(out, "<code>${1}</code>")
	// La règle lien passe avant : une image avec un texte alternatif non
	// vide a déjà été capturée comme lien. Comportement conservé tel quel.
	out = reImage.ReplaceAllString(out, `<img src="${2}" alt="${1}" />`)
	out = reQuote.ReplaceAllString(out, "<blockquote>${1}</blockquote>")
	out = reList.ReplaceAllString(out, "<li>${1}</li>")
	return out
}

// RenderPreview convertit pour l'aperçu de l'éditeur : chaque retour à la
// ligne devient un <br>.
func RenderPreview(src string) string {
	return strings.ReplaceAll(renderInline(src), "\n", "<br>")
}

// RenderArticle convertit pour la page publique : le tout est enveloppé
// dans un paragraphe, les lignes vides deviennent des ruptures de
// paragraphe, les retours simples des <br>.
func RenderArticle(src string) string {
	out := renderInline(src)
	out = strings.ReplaceAll(out, "\n\n", "</p><p>")
	out = strings.ReplaceAll(out, "\n", "<br>")
	return "<p>" + out + "</p>"
}
