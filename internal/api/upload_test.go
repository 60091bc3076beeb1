package api

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	apierrors "github.com/diogo/malcolmweb/internal/errors"
)

func TestUploadFileSendsMultipartFileField(t *testing.T) {
	var gotField, gotName, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer func() { _ = file.Close() }()

		gotField = "file"
		gotName = header.Filename
		data, _ := io.ReadAll(file)
		gotContent = string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "File uploaded successfully", "feedback": "File contains 2 words and 11 characters."}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o600); err != nil {
		t.Fatal(err)
	}

	client := newTestClient(t, srv.URL)
	result, err := client.UploadFile(path)
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}

	if gotField != "file" || gotName != "notes.txt" || gotContent != "hello world" {
		t.Errorf("server saw field=%q name=%q content=%q", gotField, gotName, gotContent)
	}
	if result.Feedback != "File contains 2 words and 11 characters." {
		t.Errorf("Feedback = %q", result.Feedback)
	}
	if result.Message != "File uploaded successfully" {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestUploadFileEmptyPathSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.UploadFile("")

	if !errors.Is(err, apierrors.ErrNoFile) {
		t.Errorf("got %v, want ErrNoFile", err)
	}
	if calls.Load() != 0 {
		t.Errorf("network layer was touched %d times, want 0", calls.Load())
	}
}

func TestUploadReaderServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "No file selected"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.UploadReader(strings.NewReader("x"), "x.txt")

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T (%v), want APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Message != "No file selected" {
		t.Errorf("Message = %q, want server message", apiErr.Message)
	}
}

func TestUploadReaderMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", "<html>oops</html>"},
		{"missing feedback", `{"message": "ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL)
			_, err := client.UploadReader(strings.NewReader("x"), "x.txt")
			if !errors.Is(err, apierrors.ErrInvalidResponse) {
				t.Errorf("got %v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestUploadFileMissingFile(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")
	_, err := client.UploadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}
