package media

import (
	"fmt"
	"math/rand/v2"
	"path"
	"strings"
	"time"

	"cradle-api/internal/domain/apperr"
)

// Folder groups uploads by the entity they illustrate.
type Folder string

const (
	FolderArtworks    Folder = "artworks"
	FolderArtists     Folder = "artists"
	FolderExhibitions Folder = "exhibitions"
	FolderCollections Folder = "collections"
	FolderPartners    Folder = "partners"
	FolderGeneral     Folder = "general"
)

func (f Folder) Valid() bool {
	switch f {
	case FolderArtworks, FolderArtists, FolderExhibitions, FolderCollections, FolderPartners, FolderGeneral:
		return true
	}
	return false
}

var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// ParseFolder maps an empty value to FolderGeneral.
func ParseFolder(v string) (Folder, error) {
	if v == "" {
		return FolderGeneral, nil
	}
	f := Folder(strings.ToLower(v))
	if !f.Valid() {
		return "", apperr.Invalid("unknown upload folder %q", v)
	}
	return f, nil
}

// Extension returns the lower-cased extension of filename, without the dot,
// if it is an accepted image type.
func Extension(filename string) (ext, contentType string, err error) {
	ext = strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	contentType, ok := contentTypes[ext]
	if !ok {
		return "", "", apperr.Invalid("unsupported file type %q", ext)
	}
	return ext, contentType, nil
}

// CheckSize rejects empty files and files above limit bytes. A
// non-positive limit disables the upper bound.
func CheckSize(size, limit int64) error {
	if size <= 0 {
		return apperr.Invalid("empty file")
	}
	if limit > 0 && size > limit {
		return apperr.Invalid("file is %d bytes, limit is %d", size, limit)
	}
	return nil
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomSuffix returns seven base-36 characters.
func RandomSuffix() string {
	b := make([]byte, 7)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}

// ObjectKey names an upload: {folder}/{unix_ms}-{suffix}.{ext}
func ObjectKey(folder Folder, ext string, now time.Time, suffix string) string {
	return fmt.Sprintf("%s/%d-%s.%s", folder, now.UnixMilli(), suffix, ext)
}

// ThumbKey names the thumbnail of key: {folder}/thumbs/{name}.jpg
func ThumbKey(key string) string {
	dir, file := path.Split(key)
	name := strings.TrimSuffix(file, path.Ext(file))
	return dir + "thumbs/" + name + ".jpg"
}
