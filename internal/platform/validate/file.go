package validate

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperrors "learnobs/internal/platform/errors"
)

const (
	MaxImageBytes = 10 << 20
	MaxAudioBytes = 50 << 20
)

type FilePolicy struct {
	Allowed     []string
	MaxBytes    int64
	TypeMessage string
	SizeMessage string
}

var (
	ImagePolicy = FilePolicy{
		Allowed:     []string{"image/jpeg", "image/jpg", "image/png", "image/gif"},
		MaxBytes:    MaxImageBytes,
		TypeMessage: "Please select a valid image file (JPEG, PNG, GIF)",
		SizeMessage: "Image file is too large. Maximum size is 10MB.",
	}
	AudioPolicy = FilePolicy{
		Allowed:     []string{"audio/mpeg", "audio/mp3", "audio/wav", "audio/m4a", "audio/mp4"},
		MaxBytes:    MaxAudioBytes,
		TypeMessage: "Please select a valid audio file (MP3, WAV, M4A)",
		SizeMessage: "Audio file is too large. Maximum size is 50MB.",
	}
)

// Check rejects a wrong type before an oversized file.
func (p FilePolicy) Check(contentType string, size int64) error {
	if !p.allows(contentType) {
		return apperrors.Validation(p.TypeMessage)
	}
	if size > p.MaxBytes {
		return apperrors.Validation(p.SizeMessage)
	}
	return nil
}

func (p FilePolicy) allows(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, a := range p.Allowed {
		if ct == a {
			return true
		}
	}
	return false
}

var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/m4a",
	".mp4":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// ContentType identifies a file. Image bytes always win over the extension
// so a renamed file is judged by what it contains.
func ContentType(name string, data []byte) string {
	if len(data) > 0 {
		if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			return "image/" + format
		}
	}
	if ct, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	if ct == "audio/wave" {
		return "audio/wav"
	}
	return ct
}
