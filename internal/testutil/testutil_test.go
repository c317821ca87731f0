package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMakeSet(t *testing.T) {
	s := MakeSet("a", "b", "a")
	if len(s) != 2 || !s["a"] || !s["b"] {
		t.Errorf("MakeSet = %v, want {a, b}", s)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, "nested/config.toml", "x = 1\n")
	MustExist(t, path)

	got, err := os.ReadFile(path)
	MustNoErr(t, err, "read")
	if string(got) != "x = 1\n" {
		t.Errorf("content = %q, want %q", got, "x = 1\n")
	}
}

func TestConfined(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain", "config.toml", false},
		{"nested", "a/b/config.toml", false},
		{"current dir", "./config.toml", false},
		{"parent", "../config.toml", true},
		{"nested escape", "a/../../config.toml", true},
		{"just dot dot", "..", true},
		{"rooted", string(filepath.Separator) + "etc" + string(filepath.Separator) + "passwd", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := confined(dir, tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("confined(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
