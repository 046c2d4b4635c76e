package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestUpsertTranslationRejectsLongKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"key":"` + strings.Repeat("k", 201) + `","value":"Halo"}`
	c.Request = httptest.NewRequest(http.MethodPut, "/api/admin/languages/en/translations", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "code", Value: "en"}}

	UpsertTranslation(c)

	// key is over the 200-char column limit, so the request must fail before
	// any database lookup
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a 201-char key, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "key") {
		t.Fatalf("error must name the key field, got %s", w.Body.String())
	}
}

func TestUpsertTranslationRejectsEmptyKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPut, "/api/admin/languages/en/translations",
		strings.NewReader(`{"key":"  ","value":"Halo"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "code", Value: "en"}}

	UpsertTranslation(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty key, got %d", w.Code)
	}
}
