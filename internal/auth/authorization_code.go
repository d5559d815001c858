package auth

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/NoxusLabb/CardapioDigital/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HandleAuthorize issues an authorization code for an already-authenticated
// admin user and redirects back to the client.
func (o *OAuthService) HandleAuthorize(c *gin.Context) {
	clientID := c.Query("client_id")
	redirectURI := c.Query("redirect_uri")
	scope := c.Query("scope")
	state := c.Query("state")

	// Validate client
	var client models.OAuthClient
	if err := o.db.Where("id = ?", clientID).First(&client).Error; err != nil {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidClient, ""))
		return
	}

	// Validate redirect URI
	if redirectURI != "" && redirectURI != client.RedirectURI {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidRequest, "invalid redirect_uri"))
		return
	}

	// JWTAuth stores userID as a uint when the request carries a valid token
	userID := ""
	if id, ok := c.Get("userID"); ok {
		if uid, ok := id.(uint); ok && uid > 0 {
			userID = strconv.FormatUint(uint64(uid), 10)
		}
	}
	if userID == "" {
		// Redirect to login page
		loginURL := "/login?redirect=" + url.QueryEscape(c.Request.URL.String())
		c.Redirect(http.StatusFound, loginURL)
		return
	}

	// Generate authorization code, valid for 10 minutes
	code := uuid.New().String()
	authCode := &models.OAuthCode{
		Code:        code,
		ClientID:    clientID,
		UserID:      userID,
		Scopes:      scope,
		RedirectURI: redirectURI,
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	}

	if err := o.db.Create(authCode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "code_generation_failed"})
		return
	}

	// Redirect back to client with authorization code
	redirectURL := redirectURI + "?code=" + code
	if state != "" {
		redirectURL += "&state=" + state
	}

	c.Redirect(http.StatusFound, redirectURL)
}
