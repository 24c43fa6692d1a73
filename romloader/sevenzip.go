package romloader

import (
	"fmt"

	"github.com/bodgit/sevenzip"
)

// extractFrom7z returns the first .nes member of a 7z archive.
func extractFrom7z(path string) ([]byte, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isROMFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()

		return limitedRead(rc)
	}

	return nil, ErrNoROMFile
}
