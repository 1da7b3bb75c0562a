package services

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
)

// UploadURLPrefix is where the upload directory is served from.
const UploadURLPrefix = "/uploads"

// Uploads lays out uploaded files on local disk under root.
type Uploads struct {
	root string
}

func NewUploads(root string) *Uploads {
	return &Uploads{root: root}
}

func (u *Uploads) Root() string {
	return u.root
}

// Attendance returns the disk path and public reference for a check-in or
// check-out photo: attendance/{user}_{date}_{in|out}{ext}.
func (u *Uploads) Attendance(userID, date string, dir models.Direction, filename string) (diskPath, ref string, err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !validExt(ext) {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s_%s_%s%s", userID, date, dir, ext)
	return u.place("attendance", name)
}

// Recce returns the disk path and public reference for a recce file:
// recce/{user}_{unix}_{filename}.
func (u *Uploads) Recce(userID string, at time.Time, filename string) (diskPath, ref string, err error) {
	name := fmt.Sprintf("%s_%d_%s", userID, at.Unix(), sanitizeFilename(filename))
	return u.place("recce", name)
}

func (u *Uploads) place(dir, name string) (string, string, error) {
	full := filepath.Join(u.root, dir)
	if err := os.MkdirAll(full, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}
	return filepath.Join(full, name), path.Join(UploadURLPrefix, dir, name), nil
}

func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 8 || ext[0] != '.' {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// sanitizeFilename keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with an underscore.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
