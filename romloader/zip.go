package romloader

import (
	"archive/zip"
	"fmt"
)

// extractFromZIP returns the first .nes member of a ZIP archive.
func extractFromZIP(path string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
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
