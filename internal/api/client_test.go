package api

import (
	"errors"
	"testing"

	apierrors "github.com/diogo/malcolmweb/internal/errors"
	"github.com/diogo/malcolmweb/internal/models"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		opts     []ClientOption
		wantBase string
	}{
		{
			name:     "defaults",
			wantBase: models.DefaultBaseURL,
		},
		{
			name:     "custom base URL",
			opts:     []ClientOption{WithBaseURL("http://localhost:5000")},
			wantBase: "http://localhost:5000",
		},
		{
			name:     "trailing slash trimmed",
			opts:     []ClientOption{WithBaseURL("http://localhost:5000/")},
			wantBase: "http://localhost:5000",
		},
		{
			name:     "custom timeout",
			opts:     []ClientOption{WithTimeout(5), WithBaseURL("http://localhost:5000")},
			wantBase: "http://localhost:5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts...)
			if err != nil {
				t.Fatalf("NewClient() error = %v", err)
			}
			defer client.Close()

			if client.BaseURL() != tt.wantBase {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), tt.wantBase)
			}
			if client.IsClosed() {
				t.Error("new client should not be closed")
			}
		})
	}
}

func TestClosedClientFailsFast(t *testing.T) {
	client, err := NewClient(WithBaseURL("http://localhost:1"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.Close()

	if !client.IsClosed() {
		t.Fatal("client should report closed")
	}

	if _, err := client.Optimize(emptyProfile()); !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("Optimize on closed client: got %v, want ErrClientClosed", err)
	}
	if _, err := client.UploadReader(nil, "f.txt"); !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("UploadReader on closed client: got %v, want ErrClientClosed", err)
	}
	if _, err := client.Health(); !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("Health on closed client: got %v, want ErrClientClosed", err)
	}
	if _, err := client.Download("f.txt", t.TempDir()); !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("Download on closed client: got %v, want ErrClientClosed", err)
	}
}

func TestEndpointJoin(t *testing.T) {
	client, err := NewClient(WithBaseURL("http://localhost:5000/"))
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	if got := client.endpoint(models.PathOptimize); got != "http://localhost:5000/optimize" {
		t.Errorf("endpoint() = %q", got)
	}
}
