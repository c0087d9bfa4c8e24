// internal/interfaces/http/middleware/region.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
)

// Region resolves the caller's region for currency presentation.
// An explicit X-Region header wins; otherwise the region subtag of the
// first Accept-Language entry is used, falling back to the configured
// default region.
func Region(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := strings.ToUpper(strings.TrimSpace(c.GetHeader("X-Region")))

		if region == "" {
			region = regionFromAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if region == "" {
			region = cfg.Checkout.DefaultRegion
		}

		c.Set("region", region)

		c.Next()
	}
}

// regionFromAcceptLanguage extracts the region subtag from the first
// language range, e.g. "pt-AO,pt;q=0.9" yields "AO".
func regionFromAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}

	first := header
	if idx := strings.IndexByte(first, ','); idx >= 0 {
		first = first[:idx]
	}
	if idx := strings.IndexByte(first, ';'); idx >= 0 {
		first = first[:idx]
	}

	parts := strings.Split(strings.TrimSpace(first), "-")
	if len(parts) < 2 {
		return ""
	}

	region := strings.ToUpper(parts[len(parts)-1])
	if len(region) != 2 {
		return ""
	}
	return region
}

// GetRegionFromContext returns the resolved region code for the request
func GetRegionFromContext(c *gin.Context) string {
	region, exists := c.Get("region")
	if !exists {
		return ""
	}
	return region.(string)
}
