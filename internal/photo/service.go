package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/stayloft/lodge-booking-backend/internal/pkg/storage"
)

// UploadRequest carries an incoming photo and the lodge (and optional room)
// it belongs to.
type UploadRequest struct {
	LodgeID    string
	RoomID     *string
	UploaderID string
	Header     *multipart.FileHeader
}

type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*Photo, error)
	Get(ctx context.Context, id string) (*Photo, error)
	ListByLodge(ctx context.Context, lodgeID string) ([]*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, req UploadRequest) (*Photo, error) {
	if req.LodgeID == "" {
		return nil, ErrInvalidSubject
	}
	if req.Header.Size > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	contentType := req.Header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := req.Header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content so it can be read twice: once for the original and
	// once for the thumbnail.
	fileBytes, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if int64(len(fileBytes)) > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	photoID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(req.Header.Filename))

	// Sharding path: photos/ab/UUID.ext
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save photo to storage: %w", err)
	}

	// Thumbnail failures do not fail the upload.
	var thumbnailPath *string
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 320, 320)
	if err != nil {
		log.Printf("failed to generate thumbnail for photo %s: %v", photoID, err)
	} else {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err != nil {
			log.Printf("failed to save thumbnail for photo %s: %v", photoID, err)
		} else {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		LodgeID:       req.LodgeID,
		RoomID:        req.RoomID,
		UploaderID:    req.UploaderID,
		Filename:      req.Header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(fileBytes)),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// Clean up orphaned blobs if the record could not be written.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByLodge(ctx context.Context, lodgeID string) ([]*Photo, error) {
	return s.repo.ListByLodge(ctx, lodgeID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open photo blob: %w", err)
	}
	return rc, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == nil {
		return nil, nil, ErrNotFound
	}

	rc, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open thumbnail blob: %w", err)
	}
	return rc, p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Best-effort blob cleanup; the record is the source of truth.
	if err := s.storage.Delete(ctx, p.StoragePath); err != nil {
		log.Printf("failed to delete photo blob %s: %v", p.StoragePath, err)
	}
	if p.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *p.ThumbnailPath); err != nil {
			log.Printf("failed to delete thumbnail blob %s: %v", *p.ThumbnailPath, err)
		}
	}

	return s.repo.Delete(ctx, id)
}
