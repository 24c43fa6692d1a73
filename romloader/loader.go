// Package romloader resolves a ROM path to the raw iNES image it
// contains. Bare .nes files are read directly and a plain gzip file is
// decompressed whole; ZIP, tar.gz, 7z and RAR archives are searched for
// the first .nes member.
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for archive detection.
var (
	magicZIP  = []byte{0x50, 0x4B, 0x03, 0x04}
	magic7z   = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip = []byte{0x1F, 0x8B}
	magicRAR  = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// iNES images top out well below this; the limit guards against
// decompression bombs.
const maxROMSize = 8 * 1024 * 1024

// ErrNoROMFile is returned when an archive contains no .nes member.
var ErrNoROMFile = errors.New("no ROM file found in archive")

// ErrFileTooLarge is returned when extracted content exceeds the size
// limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

type formatType int

const (
	formatRaw formatType = iota
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// Load reads the iNES image named by path. Archives are auto-detected by
// magic bytes, falling back to the file extension.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek file: %w", err)
	}

	switch detectFormat(header, path) {
	case formatZIP:
		return extractFromZIP(path)
	case format7z:
		return extractFrom7z(path)
	case formatGzip:
		return extractFromGzip(path)
	case formatRAR:
		return extractFromRAR(path)
	default:
		return limitedRead(f)
	}
}

// detectFormat determines the container format from magic bytes, falling
// back to the path extension.
func detectFormat(header []byte, path string) formatType {
	if bytes.HasPrefix(header, magicZIP) {
		return formatZIP
	}
	if bytes.HasPrefix(header, magicRAR) {
		return formatRAR
	}
	if bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if bytes.HasPrefix(header, magicGzip) {
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
	return formatRaw
}

// isROMFile checks for the .nes extension, case-insensitive.
func isROMFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".nes")
}

// limitedRead reads up to maxROMSize bytes, erroring beyond that.
func limitedRead(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxROMSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxROMSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
