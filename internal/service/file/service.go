package file

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/doelski/mabinihub-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

// FileService archives uploaded import files before they are parsed, so a
// disputed batch can be replayed or audited later.
type FileService interface {
	SaveImportFile(ctx context.Context, filename string, data []byte) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: storage}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SaveImportFile stores the raw upload under imports/ with a sanitized
// base name, a timestamp and a random suffix so repeated uploads of the
// same file never collide.
func (s *fileServiceImpl) SaveImportFile(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	if base == "" {
		base = "import"
	}

	suffix := uuid.New().String()[:8]
	storedName := fmt.Sprintf("%s_%s_%s%s", base, time.Now().Format("20060102_150405"), suffix, ext)
	path := filepath.Join("imports", storedName)

	savedPath, err := s.storage.Upload(ctx, bytes.NewReader(data), path)
	if err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return savedPath, nil
}
