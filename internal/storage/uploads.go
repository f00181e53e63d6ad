package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"campushire/internal/common"
)

const MaxUploadBytes = 5 << 20

var (
	DocumentExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true}
	ImageExtensions    = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}
)

// Store writes uploads under a single directory with generated names, so a
// client-supplied filename never touches the filesystem.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Save(file multipart.File, header *multipart.FileHeader, allowed map[string]bool) (string, error) {
	if header.Size > MaxUploadBytes {
		return "", common.NewValidationError("file too large", map[string]string{"file": "must be 5MB or less"})
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowed[ext] {
		return "", common.NewValidationError("unsupported file type", map[string]string{"file": "extension " + ext + " not allowed"})
	}
	name := common.NewUUID().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to store file", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(file, MaxUploadBytes+1)); err != nil {
		_ = os.Remove(dst.Name())
		return "", common.NewError(common.CodeInternal, "failed to store file", err)
	}
	return name, nil
}

// Remove deletes a previously stored file. Names outside the store are
// rejected rather than resolved.
func (s *Store) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return common.NewValidationError("invalid file name", nil)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return common.NewError(common.CodeInternal, "failed to remove file", err)
	}
	return nil
}

// Open serves a stored file back to the client.
func (s *Store) Open(name string) (*os.File, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, common.NewValidationError("invalid file name", nil)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.NewError(common.CodeNotFound, "file not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to open file", err)
	}
	return f, nil
}
