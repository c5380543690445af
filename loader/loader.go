// Package loader opens chiptune archives — ZIP, 7z, gzip, and RAR —
// and extracts the first recognized song file inside, matching the
// teacher's romloader package's extract-by-detected-format approach
// but for YM/VGM/AY/SNDH containers instead of SMS ROMs. It is a
// standalone collaborator: nothing else in this module imports it,
// and it imports nothing from this module — callers wire its output
// into a format parser themselves (spec.md §6).
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06}
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// maxSongSize bounds a single extracted song file; chiptune register
// dumps rarely exceed a few hundred KB even uncompressed, so 16MB is
// generous headroom against a hostile or corrupt archive.
const maxSongSize = 16 * 1024 * 1024

var (
	// ErrNoSongFile is returned when an archive contains no file with
	// a recognized chiptune extension.
	ErrNoSongFile = errors.New("loader: no song file found in archive")
	// ErrUnsupportedFormat is returned for unrecognized container formats.
	ErrUnsupportedFormat = errors.New("loader: unsupported archive format")
	// ErrFileTooLarge is returned when an extracted member exceeds maxSongSize.
	ErrFileTooLarge = errors.New("loader: file exceeds maximum size limit")
)

type archiveFormat int

const (
	formatUnknown archiveFormat = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// songExtensions are the container extensions LoadArchive recognizes
// as a member to extract, covering the formats song.Format names.
var songExtensions = []string{".ym", ".ay", ".vgm", ".sndh", ".snd", ".aks"}

// LoadArchive loads a chiptune file from path, transparently
// extracting it if path is a ZIP, 7z, gzip, or RAR archive. It
// returns the raw bytes and the member's base filename (useful for
// display and for picking a format.Profile by extension).
func LoadArchive(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("loader: read header of %s: %w", path, err)
	}
	header = header[:n]

	format := detectFormat(header, path)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("loader: seek %s: %w", path, err)
	}

	switch format {
	case formatRaw:
		data, err := limitedRead(f)
		if err != nil {
			return nil, "", fmt.Errorf("loader: read %s: %w", path, err)
		}
		return data, filepath.Base(path), nil
	case formatZIP:
		return extractFromZIP(path)
	case format7z:
		return extractFrom7z(path)
	case formatGzip:
		return extractFromGzip(path)
	case formatRAR:
		return extractFromRAR(path)
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func detectFormat(header []byte, path string) archiveFormat {
	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}
	if strings.HasSuffix(strings.ToLower(path), ".tar.gz") {
		return formatGzip
	}
	if isSongFile(path) {
		return formatRaw
	}
	return formatUnknown
}

func isSongFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range songExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxSongSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxSongSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
