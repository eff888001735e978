package upload

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
)

const (
	DirAvatars     = "avatars"
	DirResources   = "resources"
	DirShared      = "shared"
	DirAttachments = "attachments"
)

const mb = int64(1 << 20)

// Policy bounds what a directory accepts. Thumbnail marks directories whose
// images get a webp preview.
type Policy struct {
	MaxBytes     int64
	ContentTypes []string
	Thumbnail    bool
}

var documents = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"text/plain",
	"text/csv",
}

var images = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

var media = []string{"video/mp4", "video/webm", "audio/mpeg", "audio/mp4", "audio/wav"}

var policies = map[string]Policy{
	DirAvatars: {
		MaxBytes:     5 * mb,
		ContentTypes: []string{"image/jpeg", "image/png", "image/webp"},
		Thumbnail:    true,
	},
	DirResources: {
		MaxBytes:     200 * mb,
		ContentTypes: concat(documents, images, media),
	},
	DirShared: {
		MaxBytes:     50 * mb,
		ContentTypes: concat(documents, images),
	},
	DirAttachments: {
		MaxBytes:     25 * mb,
		ContentTypes: concat(documents, images, media),
	},
}

func PolicyFor(dir string) (Policy, error) {
	p, ok := policies[dir]
	if !ok {
		return Policy{}, httperr.Validation("invalid_directory", "Unknown upload directory.", map[string]string{
			"directory": "must be one of avatars, resources, shared, attachments",
		})
	}
	return p, nil
}

// Check validates a declared size and content type.
func (p Policy) Check(size int64, contentType string) error {
	if size <= 0 {
		return httperr.Validation("invalid_size", "File is empty.", map[string]string{
			"fileSize": "must be greater than 0",
		})
	}
	if size > p.MaxBytes {
		return httperr.Validation("file_too_large", fmt.Sprintf("File exceeds the %d MB limit.", p.MaxBytes/mb), map[string]string{
			"fileSize": fmt.Sprintf("must be at most %d bytes", p.MaxBytes),
		})
	}

	ct := normalizeType(contentType)
	for _, allowed := range p.ContentTypes {
		if ct == allowed {
			return nil
		}
	}
	return httperr.Validation("unsupported_type", "File type is not allowed here.", map[string]string{
		"contentType": ct + " is not accepted",
	})
}

func normalizeType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

func concat(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
