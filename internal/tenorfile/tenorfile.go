// Package tenorfile reads the requested tenor list from a single-column CSV.
package tenorfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileNames are the accepted file names, searched in order.
var FileNames = []string{"Tenor.csv", "tenor.csv", "TENOR.csv"}

var ErrMissingHeader = errors.New("tenor csv must include a 'tenor' column header")

// Discover returns the first accepted tenor file in dir.
func Discover(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Read returns the non-blank cells of the "tenor" column. The header match
// ignores case and surrounding whitespace.
func Read(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read tenor header: %w", err)
	}

	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), "tenor") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrMissingHeader
	}

	labels := []string{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tenor rows: %w", err)
		}
		if col >= len(rec) {
			continue
		}
		if v := strings.TrimSpace(rec[col]); v != "" {
			labels = append(labels, v)
		}
	}
	return labels, nil
}

// Load reads the tenor column from path.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tenor file: %w", err)
	}
	defer f.Close()

	labels, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return labels, nil
}

// Resolve loads explicitPath when set, else the file discovered in dir.
// A nil result with an empty path means no file was found and the caller
// should use the full catalog.
func Resolve(explicitPath, dir string) ([]string, string, error) {
	path := strings.TrimSpace(explicitPath)
	if path == "" {
		found, ok := Discover(dir)
		if !ok {
			return nil, "", nil
		}
		path = found
	}
	labels, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return labels, path, nil
}
