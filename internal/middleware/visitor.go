package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookie = "visitor"
	visitorKey    = "visitor_id"
	// visitorMaxAge keeps the theme preference for a year.
	visitorMaxAge = 365 * 24 * 60 * 60
)

type VisitorData struct {
	VisitorID string    `json:"visitor_id"`
	IssuedAt  time.Time `json:"issued_at"`
}

// VisitorMiddleware identifies the browser through a signed cookie,
// issuing a new visitor ID when the cookie is missing or invalid.
func VisitorMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		visitor := getVisitorFromCookie(c, secret)
		if visitor == nil {
			visitor = &VisitorData{
				VisitorID: uuid.New().String(),
				IssuedAt:  time.Now(),
			}
			if err := setVisitorCookie(c, secret, visitor); err != nil {
				c.Error(err)
			}
		}

		c.Set(visitorKey, visitor.VisitorID)

		c.Next()
	}
}

// getVisitorFromCookie extracts and validates visitor data from cookie
func getVisitorFromCookie(c *gin.Context, secret string) *VisitorData {
	cookie, err := c.Cookie(visitorCookie)
	if err != nil {
		return nil
	}

	// Cookie value is signature.data
	parts := strings.Split(cookie, ".")
	if len(parts) != 2 {
		return nil
	}

	signature, data := parts[0], parts[1]

	if !verifySignature(secret, data, signature) {
		return nil
	}

	decodedData, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}

	var visitor VisitorData
	if err := json.Unmarshal(decodedData, &visitor); err != nil {
		return nil
	}

	if _, err := uuid.Parse(visitor.VisitorID); err != nil {
		return nil
	}

	return &visitor
}

func encodeVisitor(secret string, visitor *VisitorData) (string, error) {
	data, err := json.Marshal(visitor)
	if err != nil {
		return "", err
	}

	encodedData := base64.URLEncoding.EncodeToString(data)
	return createSignature(secret, encodedData) + "." + encodedData, nil
}

func setVisitorCookie(c *gin.Context, secret string, visitor *VisitorData) error {
	value, err := encodeVisitor(secret, visitor)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(visitorCookie, value, visitorMaxAge, "/", "", false, true)
	return nil
}

// createSignature creates HMAC signature for data
func createSignature(secret, data string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// verifySignature verifies HMAC signature
func verifySignature(secret, data, signature string) bool {
	expectedSignature := createSignature(secret, data)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// GetVisitorID retrieves the visitor ID from context
func GetVisitorID(c *gin.Context) string {
	return c.GetString(visitorKey)
}
