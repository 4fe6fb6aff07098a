package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"wedding-voucher/voucher-svc/internal/service"
)

const qrDir = "qrcodes"

// FileStore keeps generated QR images on local disk under Root/qrcodes.
type FileStore struct {
	Root      string
	URLPrefix string
}

func NewFileStore(root, urlPrefix string) *FileStore {
	return &FileStore{Root: root, URLPrefix: strings.TrimRight(urlPrefix, "/")}
}

// SavePNG writes data to a fresh qrcodes/qr_<uuid>.png and returns that relative path.
func (s *FileStore) SavePNG(data []byte) (string, error) {
	dir := filepath.Join(s.Root, qrDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create qr directory: %w", err)
	}

	rel := path.Join(qrDir, "qr_"+uuid.NewString()+".png")
	if err := os.WriteFile(filepath.Join(s.Root, filepath.FromSlash(rel)), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write qr image: %w", err)
	}
	return rel, nil
}

// Delete removes a stored image. It reports false when the file did not exist.
func (s *FileStore) Delete(rel string) (bool, error) {
	clean, err := s.resolve(rel)
	if err != nil {
		return false, err
	}
	if err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(clean))); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete qr image: %w", err)
	}
	return true, nil
}

func (s *FileStore) URL(rel string) string {
	return s.URLPrefix + "/" + strings.TrimLeft(rel, "/")
}

func (s *FileStore) resolve(rel string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(rel))[1:]
	if !strings.HasPrefix(clean, qrDir+"/") || strings.Contains(rel, "..") {
		return "", service.ErrInvalidPath
	}
	return clean, nil
}

var _ service.ImageStore = (*FileStore)(nil)
