package lfanalytics

import "time"

// Event représente une vue de page. Les événements sont immuables et
// append-only : aucun chemin de mise à jour ni de suppression unitaire.
type Event struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PagePath  string    `gorm:"index;not null" json:"page_path"`
	SessionID string    `gorm:"index;not null" json:"session_id"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName spécifie le nom de la table pour Event
func (Event) TableName() string {
	return "analytics"
}
