package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateScanRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code Code // empty means valid
	}{
		{"valid directory", dir, ""},
		{"empty path", "", ErrCodeInvalidPath},
		{"control characters", "/tmp/\x01bad", ErrCodeInvalidPath},
		{"missing", filepath.Join(dir, "nope"), ErrCodeFileNotFound},
		{"regular file", file, ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScanRoot(tt.path)
			if tt.code == "" {
				if err != nil {
					t.Errorf("ValidateScanRoot(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if !Is(err, tt.code) {
				t.Errorf("ValidateScanRoot(%q) = %v, want code %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestValidateScanRoot_SymlinkToDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	if err := ValidateScanRoot(link); !Is(err, ErrCodeInvalidPath) {
		t.Errorf("ValidateScanRoot(symlink) = %v, want code %s", err, ErrCodeInvalidPath)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range ValidFormats {
		if err := ValidateFormat(format); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", format, err)
		}
	}
	if err := ValidateFormat("bmp"); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(bmp) = %v, want code %s", err, ErrCodeInvalidFormat)
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"valid", 1024, 768, false},
		{"zero width", 0, 768, true},
		{"negative height", 1024, -1, true},
		{"oversized", 1 << 20, 768, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if tt.wantErr && !Is(err, ErrCodeInvalidDimensions) {
				t.Errorf("ValidateDimensions(%g, %g) = %v, want code %s", tt.width, tt.height, err, ErrCodeInvalidDimensions)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateDimensions(%g, %g) = %v, want nil", tt.width, tt.height, err)
			}
		})
	}
}
