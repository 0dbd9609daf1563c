// Package fontsource locates font files for the command-line tools.
package fontsource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Default is the name that selects the embedded Go Regular font.
const Default = "goregular"

// Load returns the bytes of the font named by ref and the path it was read
// from. ref is a file path, a font file name searched in the system font
// directories, or Default. The embedded font reports an empty path.
func Load(ref string) ([]byte, string, error) {
	if ref == "" || strings.EqualFold(ref, Default) {
		return goregular.TTF, "", nil
	}

	path := ref
	if _, err := os.Stat(ref); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("fontsource: %w", err)
		}
		if filepath.IsAbs(ref) || strings.ContainsRune(ref, os.PathSeparator) {
			return nil, "", fmt.Errorf("fontsource: %w", err)
		}
		if path, err = findfont.Find(ref); err != nil {
			return nil, "", fmt.Errorf("fontsource: %q: %w", ref, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("fontsource: %w", err)
	}
	return data, path, nil
}

// Name returns a short identifier for ref, suitable for output file names.
func Name(ref string) string {
	if ref == "" {
		return Default
	}
	base := filepath.Base(ref)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
