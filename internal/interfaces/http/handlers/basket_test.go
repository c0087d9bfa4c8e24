// internal/interfaces/http/handlers/basket_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/your-org/marketplace-backend/internal/config"
)

func basketRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewBasketHandler(nil, &config.Config{})

	router := gin.New()
	router.POST("/basket/items", h.AddItem)
	router.PUT("/basket/items/:id", h.UpdateItem)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateItemRejectsMissingQuantity(t *testing.T) {
	router := basketRouter(t)

	// An omitted quantity must not decode to zero and delete the line
	w := doJSON(t, router, http.MethodPut, "/basket/items/1", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/basket/items/1", `{"quantity": null}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateItemRejectsBadItemID(t *testing.T) {
	router := basketRouter(t)

	w := doJSON(t, router, http.MethodPut, "/basket/items/abc", `{"quantity": 2}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItemRejectsMissingItemID(t *testing.T) {
	router := basketRouter(t)

	w := doJSON(t, router, http.MethodPost, "/basket/items", `{"quantity": 1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
