package errors

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

// maxMaterialIDLength bounds ids accepted from the CLI and HTTP surfaces.
const maxMaterialIDLength = 128

// ValidateMaterialID validates a material id used as a lookup key.
//
// Ids are free-form (the portal accepts both derived 7-character ids and
// arbitrary manufacturer-issued ones), so only safety rules apply:
//   - No empty or whitespace-only ids
//   - Maximum length of 128 characters
//   - No control characters or null bytes
//   - No path separators or traversal sequences (ids become file names)
func ValidateMaterialID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "material id cannot be empty")
	}

	if len(id) > maxMaterialIDLength {
		return New(ErrCodeInvalidInput, "material id too long (max %d characters)", maxMaterialIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "material id contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "material id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// recordExtensions lists the file extensions accepted for material records.
var recordExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// ValidateRecordFilename checks that a record file has a supported extension.
func ValidateRecordFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "record filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !recordExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported record format %q (must be .json, .yaml, .yml or .toml)", ext)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host")
	}

	return nil
}
