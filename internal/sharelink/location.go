package sharelink

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileLocation is the address bar of the local client: a file holding the
// URL of the current page. The workout manager reads the shared workout from
// its query and replaces the query after every change.
type FileLocation struct {
	path string
	page string
}

// NewFileLocation returns a location stored at path. page is the URL used
// until something is written.
func NewFileLocation(path, page string) *FileLocation {
	return &FileLocation{path: path, page: page}
}

// URL returns the current page URL.
func (l *FileLocation) URL() (string, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return l.page, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading location: %w", err)
	}
	if s := strings.TrimSpace(string(data)); s != "" {
		return s, nil
	}
	return l.page, nil
}

// Query returns the parsed query of the current URL.
func (l *FileLocation) Query() (url.Values, error) {
	raw, err := l.URL()
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing location %q: %w", raw, err)
	}
	return u.Query(), nil
}

// Replace swaps the query of the current page for rawQuery, keeping the
// rest of the URL.
func (l *FileLocation) Replace(rawQuery string) error {
	raw, err := l.URL()
	if err != nil {
		return err
	}
	u, err := url.Parse(raw)
	if err != nil {
		// A corrupt address bar falls back to the configured page.
		if u, err = url.Parse(l.page); err != nil {
			return fmt.Errorf("parsing page %q: %w", l.page, err)
		}
	}
	u.RawQuery = rawQuery
	u.Fragment = ""
	return l.write(u.String())
}

// Open navigates to rawURL, as when a shared link is followed.
func (l *FileLocation) Open(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("parsing link: %w", err)
	}
	return l.write(u.String())
}

func (l *FileLocation) write(s string) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating location dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".location-*")
	if err != nil {
		return fmt.Errorf("writing location: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(s + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("writing location: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing location: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("writing location: %w", err)
	}
	return nil
}
