package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS allows credentialed requests from allowedDomains. An empty list
// reflects any origin, which is only meant for local development.
func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowCredentials = true
	conf.AllowHeaders = append(conf.AllowHeaders, CSRFHeader)
	conf.ExposeHeaders = []string{"X-Request-ID"}

	if len(allowedDomains) == 0 {
		conf.AllowOriginFunc = func(string) bool { return true }
	} else {
		conf.AllowOrigins = allowedDomains
	}

	return cors.New(conf)
}
