// internal/interfaces/http/middleware/region_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/your-org/marketplace-backend/internal/config"
)

func regionFor(t *testing.T, headers map[string]string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Checkout.DefaultRegion = "AO"

	var got string
	router := gin.New()
	router.Use(Region(cfg))
	router.GET("/", func(c *gin.Context) {
		got = GetRegionFromContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(httptest.NewRecorder(), req)

	return got
}

func TestRegionHeaderWins(t *testing.T) {
	got := regionFor(t, map[string]string{
		"X-Region":        "mz",
		"Accept-Language": "pt-PT,pt;q=0.9",
	})
	require.Equal(t, "MZ", got)
}

func TestRegionFromAcceptLanguage(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"with region subtag", "pt-AO,pt;q=0.9", "AO"},
		{"quality first entry", "en-GB;q=0.8,en;q=0.7", "GB"},
		{"language only", "pt", "AO"},
		{"empty", "", "AO"},
		{"script and region", "zh-Hans-CN", "CN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := regionFor(t, map[string]string{"Accept-Language": tt.header})
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRegionDefault(t *testing.T) {
	require.Equal(t, "AO", regionFor(t, nil))
}
