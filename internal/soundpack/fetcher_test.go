package soundpack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestListPackagesFiltersIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "Retro Typewriter.keyclsound", "download_url": "https://x/retro"},
			{"name": "README.md", "download_url": "https://x/readme"},
			{"name": "Bubble Pop.KEYCLSOUND", "download_url": "https://x/bubble"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	packages, err := client.ListPackages(context.Background())
	if err != nil {
		t.Fatalf("ListPackages failed: %v", err)
	}

	if len(packages) != 2 {
		t.Fatalf("Expected 2 packages after filtering, got %d", len(packages))
	}
	if packages[0].Name != "Retro Typewriter.keyclsound" {
		t.Errorf("Unexpected first package: %q", packages[0].Name)
	}
	if packages[1].DownloadURL != "https://x/bubble" {
		t.Errorf("Unexpected download url: %q", packages[1].DownloadURL)
	}
}

func TestListPackagesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	_, err := client.ListPackages(context.Background())
	if err == nil {
		t.Fatal("Expected error for non-200 index response")
	}
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("Expected *NetworkError, got %T: %v", err, err)
	}
}

func TestFetchText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("title: Remote Sound\nurl: https://x/y.mp3"))
	}))
	defer server.Close()

	client := NewClient("", zap.NewNop())

	text, err := client.FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchText failed: %v", err)
	}
	if !strings.Contains(text, "Remote Sound") {
		t.Errorf("Unexpected body: %q", text)
	}
}

func TestFetchBinaryWritesFile(t *testing.T) {
	payload := []byte("fake audio bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "click.mp3")

	client := NewClient("", zap.NewNop())
	if err := client.FetchBinary(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("FetchBinary failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Destination file missing: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Payload mismatch: got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".part-") {
			t.Errorf("Temporary file left behind: %s", entry.Name())
		}
	}
}

func TestFetchBinaryServerErrorLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "click.mp3")

	client := NewClient("", zap.NewNop())
	err := client.FetchBinary(context.Background(), server.URL, dest)
	if err == nil {
		t.Fatal("Expected error for 404 payload")
	}
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("Expected *NetworkError, got %T: %v", err, err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Errorf("Destination should not exist after failed fetch")
	}
}

func TestFetchBinaryTruncatedBodyLeavesNoFinalFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("short"))
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "click.mp3")

	client := NewClient("", zap.NewNop())
	if err := client.FetchBinary(context.Background(), server.URL, dest); err == nil {
		t.Fatal("Expected error for truncated body")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Errorf("Destination should not exist after truncated fetch")
	}
}
