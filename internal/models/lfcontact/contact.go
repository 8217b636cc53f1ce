package lfcontact

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Message est un message reçu via le formulaire de contact.
// Append-only : aucun chemin de mise à jour.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// TableName spécifie le nom de la table pour Message
func (Message) TableName() string {
	return "messages"
}

// Validate vérifie les champs obligatoires avant insertion
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("le nom est requis")
	}
	email := strings.TrimSpace(m.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("l'email est invalide")
	}
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("le message est requis")
	}
	return nil
}

// Save insère le message après validation
func Save(db *gorm.DB, m *Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return db.Create(m).Error
}

// ListRecent retourne les derniers messages reçus
func ListRecent(db *gorm.DB, limit int) ([]Message, error) {
	var messages []Message
	err := db.Order("created_at desc").Limit(limit).Find(&messages).Error
	return messages, err
}
