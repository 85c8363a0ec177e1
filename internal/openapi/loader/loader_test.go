package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-formspec/pkg/openapi"
)

const petstore = "openapi: 3.0.3\ninfo: {title: Pets, version: '1'}\npaths: {}\n"

func TestLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	if err := os.WriteFile(path, []byte(petstore), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != petstore || doc.Location() != path {
		t.Fatalf("unexpected document from %q", doc.Location())
	}
}

func TestLoaderFS(t *testing.T) {
	loader := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(fstest.MapFS{
		"specs/petstore.yaml": {Data: []byte(petstore)},
	})))

	if _, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("specs/petstore.yaml")); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoaderFSNotConfigured(t *testing.T) {
	_, err := New(pkgopenapi.LoaderOptions{}).Load(context.Background(), pkgopenapi.SourceFromFS("a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "filesystem is not configured") {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}

func TestLoaderHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(petstore))
	}))
	defer server.Close()

	loader := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client())))

	src, err := pkgopenapi.SourceFromURL(server.URL + "/openapi.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	doc, err := loader.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != petstore {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	missing, _ := pkgopenapi.SourceFromURL(server.URL + "/missing")
	if _, err := loader.Load(context.Background(), missing); err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoaderHTTPDisabled(t *testing.T) {
	src, _ := pkgopenapi.SourceFromURL("https://example.com/openapi.yaml")
	_, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), src)
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestLoaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(pkgopenapi.LoaderOptions{}).Load(ctx, pkgopenapi.SourceFromFile("petstore.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}
