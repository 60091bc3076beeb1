package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/malcolmweb/internal/api"
)

func TestDownloadCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dest := filepath.Join(home, "files")

	client := &api.MockMalcolmClient{
		BaseURLVal:  "http://test",
		DownloadVal: filepath.Join(dest, "resume.pdf"),
	}
	cmd := newDownloadCmd(testDeps(client))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"resume.pdf", "--dir", dest})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if client.LastDownload != "resume.pdf" {
		t.Errorf("LastDownload = %q", client.LastDownload)
	}
	if !strings.Contains(out.String(), "resume.pdf") {
		t.Errorf("output missing saved path: %q", out.String())
	}
}

func TestDownloadCommand_DefaultDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	client := &api.MockMalcolmClient{
		BaseURLVal:  "http://test",
		DownloadVal: "somewhere/notes.txt",
	}
	cmd := newDownloadCmd(testDeps(client))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"notes.txt"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if client.LastDownload != "notes.txt" {
		t.Errorf("LastDownload = %q", client.LastDownload)
	}
}
