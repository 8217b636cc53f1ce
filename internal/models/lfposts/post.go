package lfposts

import (
	"html/template"
	"littlefolio/internal/models/lfmarkdown"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Models avec tags GORM
type Post struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	Title           string        `json:"title" gorm:"not null"`
	Slug            string        `json:"slug" gorm:"uniqueIndex;not null"`
	Content         string        `json:"content" gorm:"type:text;not null"`
	ContentHTML     template.HTML `json:"content_html" gorm:"-"`
	Excerpt         string        `json:"excerpt"`
	FeaturedImage   string        `json:"featured_image" gorm:"type:text"`
	MetaTitle       string        `json:"meta_title"`
	MetaDescription string        `json:"meta_description"`
	MetaKeywords    string        `json:"-" gorm:"type:text"`
	Tags            string        `json:"-" gorm:"type:text"`
	KeywordsList    []string      `json:"meta_keywords" gorm:"-"`
	TagsList        []string      `json:"tags" gorm:"-"`
	Published       bool          `json:"published" gorm:"index"`
	PublishedAt     *time.Time    `json:"published_at"`
	CreatedAt       time.Time     `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	UserID          string        `json:"user_id" gorm:"index"`
}

func (Post) TableName() string {
	return "blogs"
}

// Hooks GORM
func (p *Post) BeforeSave(tx *gorm.DB) error {
	if len(p.TagsList) > 0 {
		p.Tags = strings.Join(p.TagsList, ",")
	}
	if len(p.KeywordsList) > 0 {
		p.MetaKeywords = strings.Join(p.KeywordsList, ",")
	}
	return nil
}

func (p *Post) AfterFind(tx *gorm.DB) error {
	if p.Tags != "" {
		p.TagsList = strings.Split(p.Tags, ",")
	}
	if p.MetaKeywords != "" {
		p.KeywordsList = strings.Split(p.MetaKeywords, ",")
	}
	p.ContentHTML = template.HTML(lfmarkdown.RenderArticle(p.Content))
	return nil
}
