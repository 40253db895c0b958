package memoria_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	memoria "github.com/memoriasite/memoria"
	"github.com/memoriasite/memoria/internal/pages"
	"github.com/memoriasite/memoria/internal/storage"
	"github.com/memoriasite/memoria/pkg/testsupport"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newModuleWithBun(t *testing.T) (*memoria.Module, http.Handler) {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	if _, err := bunDB.NewCreateTable().Model((*pages.MemoryPage)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create table: %v", err)
	}

	cfg := memoria.DefaultConfig()
	cfg.App.BaseURL = "https://memoria.example"
	cfg.HTTP.CORSOrigin = "https://memoria.example"

	module, err := memoria.New(cfg,
		memoria.WithBunDB(bunDB),
		memoria.WithObjectStore(storage.NewInMemoryStore(storage.WithPublicBase("https://cdn.example", "memoria"))),
	)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	handler, err := module.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return module, handler
}

func TestModuleEndToEndWithBun(t *testing.T) {
	_, handler := newModuleWithBun(t)

	body := `{"dedicatedText":"Nuestro primer aniversario","suggestedSlug":"aniversario-2025"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/memory", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["slug"] != "aniversario-2025" {
		t.Fatalf("slug = %v", created["slug"])
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/memory/aniversario-2025", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var fetched map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fetched["viewCount"] != float64(1) {
		t.Fatalf("viewCount = %v, want 1", fetched["viewCount"])
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/memory/aniversario-2025/qrcode", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("qr status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("qr content type = %q", ct)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/memory/aniversario-2025", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/memory/aniversario-2025", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestModuleServiceAccess(t *testing.T) {
	module, _ := newModuleWithBun(t)

	created, err := module.Pages().Create(context.Background(), pages.CreatePageRequest{
		DedicatedText: "direct service access",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "direct-service-access" {
		t.Fatalf("slug = %q", created.Slug)
	}
}

func TestModuleRequiresStorageConfigWithoutOverride(t *testing.T) {
	cfg := memoria.DefaultConfig()

	_, err := memoria.New(cfg)
	if err == nil {
		t.Fatal("expected storage validation error")
	}
}
