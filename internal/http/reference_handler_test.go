package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"charm-money/internal/domain"
)

func TestReferenceHandlerQuestions(t *testing.T) {
	env := setupRouter(nil, "")
	rec := performRequest(env.router, http.MethodGet, "/cmi/questions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		PageSize  int               `json:"page_size"`
		Pages     int               `json:"pages"`
		Total     int               `json:"total"`
		Questions []domain.Question `json:"questions"`
		Traits    []traitInfo       `json:"traits"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.PageSize != 5 || resp.Pages != 5 || resp.Total != 25 || len(resp.Questions) != 25 {
		t.Fatalf("unexpected shape %+v", resp)
	}
	if resp.Questions[0].ID != "cl1" {
		t.Fatalf("expected bank order, first=%q", resp.Questions[0].ID)
	}
	if len(resp.Traits) != 5 || resp.Traits[0].LowLabel != "Avoidant" || resp.Traits[0].HighLabel != "Anxious" {
		t.Fatalf("unexpected traits %+v", resp.Traits)
	}
}

func TestReferenceHandlerIdentities(t *testing.T) {
	env := setupRouter(nil, "")
	rec := performRequest(env.router, http.MethodGet, "/cmi/identities", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Identities []domain.MoneyIdentity `json:"identities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Identities) != 32 || resp.Identities[0].Bits != "00000" || resp.Identities[31].Bits != "11111" {
		t.Fatalf("unexpected identities")
	}
}

func TestReferenceHandlerIdentity(t *testing.T) {
	env := setupRouter(nil, "")

	rec := performRequest(env.router, http.MethodGet, "/cmi/identities/12", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Identity domain.MoneyIdentity `json:"identity"`
		Family   domain.PatternFamily `json:"family"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Identity.Bits != "01011" || resp.Family.Bits != "010" {
		t.Fatalf("unexpected identity %+v family %+v", resp.Identity, resp.Family)
	}

	if rec := performRequest(env.router, http.MethodGet, "/cmi/identities/33", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := performRequest(env.router, http.MethodGet, "/cmi/identities/abc", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReferenceHandlerFamilies(t *testing.T) {
	env := setupRouter(nil, "")
	rec := performRequest(env.router, http.MethodGet, "/cmi/families", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Families []domain.PatternFamily `json:"families"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Families) != 8 || resp.Families[0].Bits != "000" {
		t.Fatalf("unexpected families %+v", resp.Families)
	}
}

func TestRouterHealthAndRequestID(t *testing.T) {
	env := setupRouter(nil, "")
	rec := performRequest(env.router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id")
	}

	rec = performRequest(env.router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("expected prometheus exposition format, got %q", rec.Header().Get("Content-Type"))
	}
}

func TestRouterHealthFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zap.NewNop(), NewResultHandler(zap.NewNop(), nil, ""), NewReferenceHandler(zap.NewNop()), func(context.Context) error {
		return errors.New("db down")
	})
	rec := performRequest(r, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
