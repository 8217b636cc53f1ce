package lfposts

import "strings"

// PostDraft est l'état de formulaire typé de l'éditeur. Chaque transition
// passe par ApplyFormChange pour rester testable isolément.
type PostDraft struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Content         string   `json:"content"`
	Excerpt         string   `json:"excerpt"`
	FeaturedImage   string   `json:"featured_image"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	MetaKeywords    []string `json:"meta_keywords"`
	Tags            []string `json:"tags"`
	Published       bool     `json:"published"`
}

// DraftFromPost recharge un brouillon depuis un article persisté
func DraftFromPost(p *Post) PostDraft {
	return PostDraft{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		FeaturedImage:   p.FeaturedImage,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		MetaKeywords:    p.KeywordsList,
		Tags:            p.TagsList,
		Published:       p.Published,
	}
}

// ApplyFormChange est le réducteur pur de l'éditeur : il retourne une
// copie du brouillon avec le champ modifié. Changer le titre rafraîchit
// aussi le slug et le meta title, comme dans l'éditeur.
func ApplyFormChange(d PostDraft, field string, value string) PostDraft {
	switch field {
	case "title":
		d.Title = value
		d.Slug = GenerateSlug(value)
		d.MetaTitle = value
	case "slug":
		d.Slug = value
	case "content":
		d.Content = value
	case "excerpt":
		d.Excerpt = value
	case "featured_image":
		d.FeaturedImage = value
	case "meta_title":
		d.MetaTitle = value
	case "meta_description":
		d.MetaDescription = value
	case "meta_keywords":
		d.MetaKeywords = splitList(value)
	case "tags":
		d.Tags = splitList(value)
	}
	return d
}

// splitList découpe une saisie "tag1, tag2" en liste, vides éliminés
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
