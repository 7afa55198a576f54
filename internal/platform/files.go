package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"fyne.io/fyne/v2/storage"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// Reference schemes
const (
	SchemeFile  = "file"
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// ErrFileTooLarge is returned by ReadLocalFile when a file exceeds its limit
var ErrFileTooLarge = errors.New("file exceeds size limit")

// SchemeSeparator splits a scheme from the rest of a reference
const SchemeSeparator = "://"

// Scheme returns the lower-cased scheme of a reference, or "" when the
// reference has none (a bare path). Windows drive letters are not schemes.
func Scheme(reference string) string {
	ref := strings.TrimSpace(reference)
	if IsWindowsDrivePath(ref) {
		return ""
	}
	idx := strings.Index(ref, SchemeSeparator)
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(ref[:idx])
}

// IsWindowsDrivePath reports whether p looks like C:\dir or C:/dir
func IsWindowsDrivePath(p string) bool {
	if len(p) < 3 {
		return false
	}
	c := p[0]
	isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	return isLetter && p[1] == ':' && (p[2] == '\\' || p[2] == '/')
}

// ResolveLocalPath maps a local image reference to a filesystem path. It
// returns false for references that are not local (http, https, or any
// other scheme).
func ResolveLocalPath(reference string) (string, bool) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return "", false
	}

	switch Scheme(ref) {
	case "":
		return filepath.Clean(ref), true
	case SchemeFile:
		uri, err := storage.ParseURI(ref)
		if err != nil {
			return "", false
		}
		path := uri.Path()
		// file:///C:/dir/img.png parses to /C:/dir/img.png
		if runtime.GOOS == OSWindows && len(path) > 0 && path[0] == '/' && IsWindowsDrivePath(path[1:]) {
			path = path[1:]
		}
		return filepath.Clean(path), true
	default:
		return "", false
	}
}

// ReadLocalFile reads a local file, rejecting directories and files larger
// than maxBytes (when maxBytes > 0).
func ReadLocalFile(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory: %s", path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, path, info.Size(), maxBytes)
	}
	return os.ReadFile(path)
}
