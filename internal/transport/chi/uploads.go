package chi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/claro-labs/claro/internal/domain"
)

// UploadConfig controls multipart upload staging.
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// stageUpload copies the named multipart part to a uniquely named file
// under the staging dir so the PDF reader can seek it. The returned
// cleanup removes the file; callers run it before responding.
func (s *Server) stageUpload(r *http.Request, field string) (string, func(), error) {
	if err := r.ParseMultipartForm(s.uploads.MaxBytes); err != nil {
		return "", nil, fmt.Errorf("parse multipart form: %v: %w", err, domain.ErrValidation)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("missing %q part: %w", field, domain.ErrValidation)
	}
	defer file.Close()

	path := filepath.Join(s.uploads.Dir, uuid.NewString()+filepath.Ext(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("stage upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(path)
		return "", nil, fmt.Errorf("stage upload: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("upload cleanup failed", zap.String("path", path), zap.Error(err))
		}
	}
	return path, cleanup, nil
}
