package handlers_contact

import (
	"littlefolio/internal/models/lfcontact"
	"littlefolio/internal/models/lffolio"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ContactRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Subject       string `json:"subject"`
	Body          string `json:"body" binding:"required"`
	CaptchaID     string `json:"captcha_id" binding:"required"`
	CaptchaAnswer string `json:"captcha_answer" binding:"required"`
}

// ContactHandler reçoit un message du formulaire de contact,
// gardé par captcha
func ContactHandler(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	lf := lffolio.GetInstance()

	if err := lf.Captcha.VerifyCaptcha(req.CaptchaID, req.CaptchaAnswer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := lfcontact.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}

	if err := lfcontact.Save(lf.Db, &message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Info().Str("email", req.Email).Msg("Message de contact reçu")
	c.JSON(http.StatusOK, gin.H{"message": "Message envoyé"})
}

// ListMessagesHandler liste les derniers messages reçus (admin)
func ListMessagesHandler(c *gin.Context) {
	messages, err := lfcontact.ListRecent(lffolio.GetInstance().Db, 50)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "base de données indisponible"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
