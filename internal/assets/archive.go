package assets

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"thali/internal/items"

	"github.com/google/uuid"
)

var ErrBadArchive = errors.New("uploaded archive is not a valid zip")

// placeholderName is the entry filename inside each per-item directory of
// the downloadable placeholder archive.
const placeholderName = "default.jpg"

const defaultExt = ".jpg"

// Uploader persists file bytes under a key and returns the stored path.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

// BuildPlaceholderArchive produces a zip with one empty entry per staged
// item at item-<position>/default.jpg, so the client knows exactly how
// many images to supply back and in what layout.
func BuildPlaceholderArchive(batch []items.Item) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i := range batch {
		if _, err := zw.Create(entryDir(i) + "/" + placeholderName); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Linker binds uploaded archive entries onto staged items by position.
type Linker struct {
	storage Uploader
}

func NewLinker(storage Uploader) *Linker {
	return &Linker{storage: storage}
}

// LinkArchive walks the staged batch and the archive's file entries,
// sorted by full entry path, in lock-step: one entry per item starting
// from the first staged item. The archive's physical order is not
// trusted. Entries run out before items → remaining items keep no image.
// Only restaurants record an image path; a menu-item position still
// consumes its entry.
//
// Files uploaded before a failure are not rolled back.
func (l *Linker) LinkArchive(ctx context.Context, batch []items.Item, archive []byte) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}

	var entries []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, f)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	consumed := 0
	for i, item := range batch {
		if i >= len(entries) {
			break
		}
		entry := entries[i]
		consumed++

		restaurant, ok := item.(*items.Restaurant)
		if !ok {
			continue
		}

		storedPath, err := l.uploadEntry(ctx, entry, i)
		if err != nil {
			return consumed - 1, err
		}
		restaurant.ImagePath = storedPath
	}

	return consumed, nil
}

func (l *Linker) uploadEntry(ctx context.Context, entry *zip.File, position int) (string, error) {
	ext := strings.ToLower(path.Ext(entry.Name))
	if ext == "" {
		ext = defaultExt
	}
	key := fmt.Sprintf("%s/%s%s", entryDir(position), uuid.New().String(), ext)

	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	defer rc.Close()

	return l.storage.Upload(ctx, key, rc)
}

func entryDir(position int) string {
	return fmt.Sprintf("item-%d", position+1)
}
