package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "photo.png", "photo.png"},
		{"uppercase extension", "PHOTO.JPG", "PHOTO.JPG"},
		{"strips unix path", "../../etc/passwd.png", "passwd.png"},
		{"strips windows path", `C:\temp\shot.jpeg`, "shot.jpeg"},
		{"zip entry path", "uploads/cell.webp", "cell.webp"},
		{"odd characters replaced", "my photo (1).png", "my_photo__1_.png"},
		{"non-image extension", "notes.txt", ""},
		{"executable", "payload.exe", ""},
		{"no extension", "README", ""},
		{"empty", "", ""},
		{"dot only", ".", ""},
		{"dot dot", "..", ""},
		{"only separators", "///", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestIsImageExtension(t *testing.T) {
	assert.True(t, IsImageExtension(".png"))
	assert.True(t, IsImageExtension(".JPEG"))
	assert.True(t, IsImageExtension(".webp"))
	assert.False(t, IsImageExtension(".pdf"))
	assert.False(t, IsImageExtension(""))
	assert.False(t, IsImageExtension("png"))
}
