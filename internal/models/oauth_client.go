package models

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OAuthClient is a machine client of the admin API (dashboard integrations,
// kitchen displays). Owned by the admin user that created it.
type OAuthClient struct {
	ID          string `gorm:"primaryKey"`
	Secret      string `gorm:"not null"`
	Name        string
	Domain      string
	UserID      uint   // owning admin user
	Scopes      string // space-separated list of allowed scopes
	GrantTypes  string // space-separated list: "authorization_code client_credentials"
	RedirectURI string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

// oauth2.ClientInfo implementation so the client store can hand records
// straight to the go-oauth2 server.

func (c *OAuthClient) GetID() string     { return c.ID }
func (c *OAuthClient) GetSecret() string { return c.Secret }
func (c *OAuthClient) GetDomain() string { return c.Domain }
func (c *OAuthClient) IsPublic() bool    { return false }

func (c *OAuthClient) GetUserID() string {
	return strconv.FormatUint(uint64(c.UserID), 10)
}

// VerifyPassword implements oauth2.ClientPasswordVerifier; stored secrets
// are bcrypt hashes, never plain text.
func (c *OAuthClient) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(password)) == nil
}
