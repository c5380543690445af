package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func createTestYMFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "song.ym")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to create test YM file: %v", err)
	}
	return path
}

func createTestZipFile(t *testing.T, data []byte, memberName string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	fw, err := w.Create(memberName)
	if err != nil {
		t.Fatalf("failed to create member in zip: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("failed to write to zip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return path
}

func createTestGzipFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "song.ym.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create gzip file: %v", err)
	}
	defer f.Close()

	w := gzip.NewWriter(f)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("failed to write to gzip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close gzip: %v", err)
	}
	return path
}

func TestLoadArchiveRawSong(t *testing.T) {
	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	path := createTestYMFile(t, want)

	data, name, err := LoadArchive(path)
	if err != nil {
		t.Fatalf("LoadArchive: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("data mismatch: got %v, want %v", data, want)
	}
	if name != "song.ym" {
		t.Errorf("name = %q, want song.ym", name)
	}
}

func TestLoadArchiveZip(t *testing.T) {
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	path := createTestZipFile(t, want, "tune.ym")

	data, name, err := LoadArchive(path)
	if err != nil {
		t.Fatalf("LoadArchive: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("data mismatch: got %v, want %v", data, want)
	}
	if name != "tune.ym" {
		t.Errorf("name = %q, want tune.ym", name)
	}
}

func TestLoadArchiveZipWithSubdirectory(t *testing.T) {
	want := []byte{0x12, 0x34, 0x56}
	path := createTestZipFile(t, want, "songs/demo/tune.ym")

	data, name, err := LoadArchive(path)
	if err != nil {
		t.Fatalf("LoadArchive: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("data mismatch: got %v, want %v", data, want)
	}
	if name != "tune.ym" {
		t.Errorf("name should be just the filename, got %q", name)
	}
}

func TestLoadArchiveGzip(t *testing.T) {
	want := []byte{0x11, 0x22, 0x33, 0x44, 0x55}
	path := createTestGzipFile(t, want)

	data, _, err := LoadArchive(path)
	if err != nil {
		t.Fatalf("LoadArchive: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("data mismatch: got %v, want %v", data, want)
	}
}

func TestDetectFormatMagicBytes(t *testing.T) {
	cases := []struct {
		header []byte
		path   string
		want   archiveFormat
	}{
		{[]byte{0x50, 0x4B, 0x03, 0x04}, "file.dat", formatZIP},
		{[]byte{0x50, 0x4B, 0x05, 0x06}, "file.dat", formatZIP},
		{[]byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, "file.dat", format7z},
		{[]byte{0x1F, 0x8B}, "file.dat", formatGzip},
		{[]byte{0x52, 0x61, 0x72, 0x21}, "file.dat", formatRAR},
	}
	for _, tc := range cases {
		if got := detectFormat(tc.header, tc.path); got != tc.want {
			t.Errorf("detectFormat(%v, %s) = %d, want %d", tc.header, tc.path, got, tc.want)
		}
	}
}

func TestDetectFormatExtensionFallback(t *testing.T) {
	cases := []struct {
		path string
		want archiveFormat
	}{
		{"tune.ym", formatRaw},
		{"tune.YM", formatRaw},
		{"tune.sndh", formatRaw},
		{"tune.ay", formatRaw},
		{"tune.vgm", formatRaw},
		{"game.zip", formatZIP},
		{"game.7z", format7z},
		{"game.gz", formatGzip},
		{"game.tgz", formatGzip},
		{"game.tar.gz", formatGzip},
		{"game.rar", formatRAR},
		{"game.unknown", formatUnknown},
	}
	for _, tc := range cases {
		if got := detectFormat([]byte{}, tc.path); got != tc.want {
			t.Errorf("detectFormat([], %s) = %d, want %d", tc.path, got, tc.want)
		}
	}
}

func TestLoadArchiveNoSongInZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip: %v", err)
	}
	w := zip.NewWriter(f)
	fw, _ := w.Create("readme.txt")
	fw.Write([]byte("hello"))
	w.Close()
	f.Close()

	_, _, err = LoadArchive(path)
	if err != ErrNoSongFile {
		t.Errorf("err = %v, want ErrNoSongFile", err)
	}
}

func TestLoadArchiveFileNotFound(t *testing.T) {
	if _, _, err := LoadArchive("/nonexistent/path/tune.ym"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestIsSongFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"tune.ym", true},
		{"tune.YM", true},
		{"tune.ay", true},
		{"tune.vgm", true},
		{"tune.sndh", true},
		{"tune.txt", false},
		{"tune.ym.bak", false},
		{"tune", false},
	}
	for _, tc := range cases {
		if got := isSongFile(tc.name); got != tc.want {
			t.Errorf("isSongFile(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
