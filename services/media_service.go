package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/techagentng/cleancity/config"
	"github.com/techagentng/cleancity/db"
	apiError "github.com/techagentng/cleancity/errors"
)

// maxEvidenceWidth bounds stored evidence images; larger uploads are scaled down.
const maxEvidenceWidth = 1280

var supportedImageTypes = map[string]bool{
	".png":  true,
	".jpeg": true,
	".jpg":  true,
}

type MediaService interface {
	ProcessEvidenceImage(ctx context.Context, reportID uuid.UUID, filename string, r io.Reader) (string, error)
}

type mediaService struct {
	Config    *config.Config
	mediaRepo db.MediaRepository
}

func NewMediaService(mediaRepo db.MediaRepository, conf *config.Config) MediaService {
	return &mediaService{
		Config:    conf,
		mediaRepo: mediaRepo,
	}
}

// ProcessEvidenceImage normalises an uploaded photo to JPEG and stores it,
// returning the URL to record as resolution evidence.
func (m *mediaService) ProcessEvidenceImage(ctx context.Context, reportID uuid.UUID, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedImageTypes[ext] {
		return "", apiError.BadRequest("unsupported image type %q", ext)
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", apiError.BadRequest("failed to decode image: %v", err)
	}
	if img.Bounds().Dx() > maxEvidenceWidth {
		img = imaging.Resize(img, maxEvidenceWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	key := fmt.Sprintf("evidence/%s/%s.jpg", reportID, uuid.New())
	return m.mediaRepo.UploadToS3(ctx, key, "image/jpeg", buf.Bytes())
}
