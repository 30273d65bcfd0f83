package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON
// body, nested objects and arrays included. Password fields are left as sent
// and entities are decoded after stripping, so "Tom & Jerry" and query
// strings in URLs survive. Non-JSON bodies pass through.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch &&
			c.Request.Method != http.MethodDelete {
			c.Next()
			return
		}
		if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body", "code": "invalid_input"})
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body any
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON", "code": "invalid_input"})
			return
		}

		newBody, _ := json.Marshal(sanitizeValue(policy, body))
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

// rawKeys are compared against the lowercased key.
var rawKeys = []string{"password"}

func rawKey(k string) bool {
	k = strings.ToLower(k)
	for _, raw := range rawKeys {
		if strings.Contains(k, raw) {
			return true
		}
	}
	return false
}

func sanitizeValue(p *bluemonday.Policy, v any) any {
	switch t := v.(type) {
	case string:
		return html.UnescapeString(p.Sanitize(t))
	case map[string]any:
		for k, inner := range t {
			if rawKey(k) {
				continue
			}
			t[k] = sanitizeValue(p, inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = sanitizeValue(p, inner)
		}
		return t
	default:
		return v
	}
}
