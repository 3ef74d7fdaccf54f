package media

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// buildFileName generates a collision-resistant filename that preserves the
// original extension.
func buildFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" || len(ext) > 10 {
		ext = ".dat"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
}

// validateUpload checks extension and size against the configured limits.
func validateUpload(filename string, size int64, allowedFormats string, maxSizeMB int) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(strings.TrimSpace(filename))), ".")
	if ext == "" {
		return fmt.Errorf("file extension is required")
	}
	if maxSizeMB > 0 && size > int64(maxSizeMB)*1024*1024 {
		return fmt.Errorf("file size exceeds %dMB", maxSizeMB)
	}

	allowSet := make(map[string]struct{})
	for _, item := range strings.Split(allowedFormats, ",") {
		item = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(item)), ".")
		if item == "" {
			continue
		}
		allowSet[item] = struct{}{}
	}
	if len(allowSet) == 0 {
		return nil
	}
	if _, ok := allowSet[ext]; !ok {
		return fmt.Errorf("format .%s is not allowed", ext)
	}
	return nil
}

// detectContentType sniffs the MIME type from the declared header, extension,
// or raw payload bytes, in that priority order.
func detectContentType(filename string, payload []byte, declared string) string {
	if ct := strings.TrimSpace(declared); ct != "" {
		return ct
	}
	if ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename))); ext != "" {
		if guessed := mime.TypeByExtension(ext); guessed != "" {
			return guessed
		}
	}
	if len(payload) > 0 {
		return http.DetectContentType(payload)
	}
	return "application/octet-stream"
}

// renderObjectKey expands the configured key template for remote storage.
// Supported tokens: {Y} {m} {d} {uuid} {md5} {filename} {ext}.
func renderObjectKey(template, originalName string, payload []byte, now time.Time) string {
	tpl := strings.TrimSpace(template)
	if tpl == "" {
		tpl = "uploads/{Y}/{m}/{uuid}.{ext}"
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), ".")
	if ext == "" {
		ext = "dat"
	}
	base := strings.TrimSuffix(filepath.Base(strings.TrimSpace(originalName)), filepath.Ext(originalName))
	if base == "" {
		base = "file"
	}
	sum := md5.Sum(payload)

	key := strings.NewReplacer(
		"{Y}", now.Format("2006"),
		"{m}", now.Format("01"),
		"{d}", now.Format("02"),
		"{uuid}", strings.ReplaceAll(uuid.NewString(), "-", ""),
		"{md5}", hex.EncodeToString(sum[:]),
		"{filename}", base,
		"{ext}", ext,
	).Replace(tpl)

	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimSpace(strings.TrimPrefix(key, "/"))
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	return key
}

// safeName returns the base name of raw only when it is a safe path segment.
func safeName(raw string) string {
	name := filepath.Base(strings.TrimSpace(raw))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ""
	}
	if !isSafeSegment(name) {
		return ""
	}
	return name
}

// isSafeSegment returns true when s contains only alphanumerics, hyphens,
// underscores, or dots.
func isSafeSegment(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			continue
		}
		return false
	}
	return true
}
