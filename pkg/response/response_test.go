package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuccessWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Success(c, http.StatusCreated, map[string]int{"n": 1}, "created", NewPageMeta(2, 10, 25))

	if w.Code != http.StatusCreated {
		t.Fatalf("code = %d", w.Code)
	}
	var body struct {
		Success   bool           `json:"success"`
		RequestID string         `json:"request_id"`
		Data      map[string]int `json:"data"`
		Meta      PageMeta       `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.RequestID != "req-1" || body.Data["n"] != 1 {
		t.Fatalf("body = %+v", body)
	}
	if body.Meta.TotalPages != 3 {
		t.Fatalf("total_pages = %d", body.Meta.TotalPages)
	}
}

func TestAbortStopsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Abort(c, http.StatusForbidden, "forbidden", nil)
	if !c.IsAborted() || w.Code != http.StatusForbidden {
		t.Fatalf("aborted=%v code=%d", c.IsAborted(), w.Code)
	}
}
