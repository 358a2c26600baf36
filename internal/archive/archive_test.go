package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// writeJar stores a zip at path holding the given entries.
func writeJar(t *testing.T, fs afero.Fs, path string, entries map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write jar: %v", err)
	}
}

func TestMainClass(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
		wantErr  error
	}{
		{
			name:     "main class",
			manifest: "Manifest-Version: 1.0\r\nMain-Class: com.example.App\r\n\r\n",
			want:     "com.example.App",
		},
		{
			name: "rsrc main class wins",
			manifest: "Manifest-Version: 1.0\r\n" +
				"Main-Class: org.eclipse.jdt.internal.jarinjarloader.JarRsrcLoader\r\n" +
				"Rsrc-Main-Class: com.example.App\r\n\r\n",
			want: "com.example.App",
		},
		{
			name:     "attribute names are case insensitive",
			manifest: "main-class: com.example.App\n",
			want:     "com.example.App",
		},
		{
			name:     "empty rsrc falls back",
			manifest: "Rsrc-Main-Class: \nMain-Class: com.example.App\n",
			want:     "com.example.App",
		},
		{
			name:     "no main class",
			manifest: "Manifest-Version: 1.0\r\nCreated-By: 1.8.0_60\r\n\r\n",
			wantErr:  ErrNoMainClass,
		},
		{
			name:     "main class only in a per-entry section",
			manifest: "Manifest-Version: 1.0\n\nName: com/example/\nMain-Class: com.example.App\n",
			wantErr:  ErrNoMainClass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeJar(t, fs, "/svc/app.jar", map[string]string{
				ManifestPath:            tt.manifest,
				"com/example/App.class": "\xca\xfe\xba\xbe",
			})

			got, err := MainClass(fs, "/svc/app.jar")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("MainClass() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("MainClass() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("MainClass() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMainClassErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeJar(t, fs, "/svc/nomanifest.jar", map[string]string{"a.txt": "x"})
	if err := afero.WriteFile(fs, "/svc/broken.jar", []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := fs.MkdirAll("/svc/dir.jar", 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "", ErrNoArchive},
		{"missing file", "/svc/missing.jar", ErrUnreadable},
		{"not a zip", "/svc/broken.jar", ErrUnreadable},
		{"directory", "/svc/dir.jar", ErrUnreadable},
		{"no manifest", "/svc/nomanifest.jar", ErrNoManifest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MainClass(fs, tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("MainClass() error = %v, want %v", err, tt.want)
			}
			if got != "" {
				t.Errorf("MainClass() = %q, want empty", got)
			}
		})
	}
}

func TestParseManifestContinuation(t *testing.T) {
	// Manifest lines wrap at 72 bytes with a leading space.
	in := "Manifest-Version: 1.0\r\n" +
		"Main-Class: com.example.very.long.package.name.that.does.not.fit.on.o\r\n" +
		" ne.line.App\r\n" +
		"Class-Path: lib/a.jar\r\n" +
		"\r\n"

	m, err := ParseManifest(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	if got, want := m.Get("Main-Class"), "com.example.very.long.package.name.that.does.not.fit.on.one.line.App"; got != want {
		t.Errorf("Main-Class = %q, want %q", got, want)
	}
	if got := m.Get("class-path"); got != "lib/a.jar" {
		t.Errorf("Class-Path = %q", got)
	}
}

func TestParseManifestInvalid(t *testing.T) {
	if _, err := ParseManifest(strings.NewReader("Manifest-Version 1.0\n")); err == nil {
		t.Error("expected error for a line without a colon")
	}
}
