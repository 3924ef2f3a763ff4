package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows credentialed requests from the configured origins. origins is a
// comma separated list; "*" echoes back any requesting origin.
func CORS(origins string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			config.AllowOrigins = nil
			config.AllowOriginFunc = func(string) bool { return true }
			break
		}
		config.AllowOrigins = append(config.AllowOrigins, origin)
	}
	if config.AllowOriginFunc == nil && len(config.AllowOrigins) == 0 {
		config.AllowOriginFunc = func(string) bool { return true }
	}

	return cors.New(config)
}
