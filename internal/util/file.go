package util

import (
	"errors"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// ValidateMimeType sniffs the content and checks it against allowed MIME
// prefixes or full types, e.g. "image/", "application/pdf".
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// IsImageExtension reports whether ext (with leading dot, any case) is an
// accepted image file extension.
func IsImageExtension(ext string) bool {
	return imageExtensions[strings.ToLower(ext)]
}

// SanitizeFilename strips directory components from an externally supplied
// file name and reduces it to a safe base name. Returns an empty string when
// nothing usable is left or the extension is not an accepted image type.
func SanitizeFilename(name string) string {
	// Archives may carry either separator regardless of platform.
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	cleaned := b.String()
	if strings.Trim(cleaned, "._-") == "" {
		return ""
	}
	if !IsImageExtension(filepath.Ext(cleaned)) {
		return ""
	}
	return cleaned
}
