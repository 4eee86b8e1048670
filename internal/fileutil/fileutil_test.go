package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/docpress/go-html2pdf/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestFileExists - File existence check
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	testDir := filepath.Join(tempDir, "testdir")
	if err := os.Mkdir(testDir, 0755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{
			name: "existing file returns true",
			path: testFile,
			want: true,
		},
		{
			name: "directory returns false",
			path: testDir,
			want: false,
		},
		{
			name: "nonexistent path returns false",
			path: filepath.Join(tempDir, "nonexistent"),
			want: false,
		},
		{
			name: "empty path returns false",
			path: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.FileExists(tt.path)
			if got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSanitizeFilename - Upload name sanitization
// ---------------------------------------------------------------------------

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "plain name is unchanged",
			input: "report.docx",
			want:  "report.docx",
		},
		{
			name:  "spaces are dropped",
			input: "my report final.docx",
			want:  "myreportfinal.docx",
		},
		{
			name:  "path separators are dropped",
			input: "../../etc/passwd",
			want:  "etcpasswd",
		},
		{
			name:  "leading dots are stripped",
			input: "..hidden.docx",
			want:  "hidden.docx",
		},
		{
			name:  "unicode is dropped",
			input: "résumé.docx",
			want:  "rsum.docx",
		},
		{
			name:    "nothing left",
			input:   "../..",
			wantErr: fileutil.ErrEmptyFilename,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: fileutil.ErrEmptyFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fileutil.SanitizeFilename(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SanitizeFilename(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBaseNameWithoutExt - Extension stripping
// ---------------------------------------------------------------------------

func TestBaseNameWithoutExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "docx file", input: "report.docx", want: "report"},
		{name: "no extension", input: "report", want: "report"},
		{name: "multiple dots", input: "report.v2.docx", want: "report.v2"},
		{name: "dotfile keeps name", input: ".profile", want: ".profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.BaseNameWithoutExt(tt.input); got != tt.want {
				t.Errorf("BaseNameWithoutExt(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
