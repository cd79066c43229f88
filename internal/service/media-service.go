package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/asre459/menna/internal/events"
	"github.com/asre459/menna/internal/models"
	"github.com/asre459/menna/internal/repository"
	"github.com/asre459/menna/internal/storage"
)

// Upload allow-list, matching the marketing site's asset needs.
var (
	allowedExtensions = map[string]bool{
		"jpeg": true, "jpg": true, "png": true, "gif": true,
		"mp4": true, "pdf": true, "doc": true, "docx": true,
	}
	allowedMimeTypes = map[string]bool{
		"image/jpeg":      true,
		"image/jpg":       true,
		"image/png":       true,
		"image/gif":       true,
		"video/mp4":       true,
		"application/pdf": true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	}
)

type MediaService struct {
	mediaRepo      *repository.MediaRepository
	store          *storage.DiskStore
	publicPath     string
	maxFileSize    int64
	eventPublisher events.Publisher
}

func NewMediaService(mediaRepo *repository.MediaRepository, store *storage.DiskStore, publicPath string, maxFileSize int64, eventPublisher events.Publisher) *MediaService {
	return &MediaService{
		mediaRepo:      mediaRepo,
		store:          store,
		publicPath:     strings.TrimSuffix(publicPath, "/"),
		maxFileSize:    maxFileSize,
		eventPublisher: eventPublisher,
	}
}

// ValidateUpload checks a file against the extension and MIME allow-lists
// before anything touches disk.
func ValidateUpload(filename, mimetype string, size, maxSize int64) error {
	if size > maxSize {
		return ErrFileTooLarge
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !allowedExtensions[ext] {
		return ErrFileType
	}

	mime, _, _ := strings.Cut(strings.ToLower(mimetype), ";")
	if !allowedMimeTypes[strings.TrimSpace(mime)] {
		return ErrFileType
	}

	return nil
}

// Upload stores the file on disk, then persists its metadata. When the
// metadata write fails the stored file is removed again so the two never
// diverge.
func (ms *MediaService) Upload(ctx context.Context, fileHeader *multipart.FileHeader, title, description string) (*models.Media, error) {
	mimetype := fileHeader.Header.Get("Content-Type")
	if err := ValidateUpload(fileHeader.Filename, mimetype, fileHeader.Size, ms.maxFileSize); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	storedName, size, err := ms.store.Save(file, fileHeader.Filename)
	if err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	media := &models.Media{
		ID:          bson.NewObjectID(),
		Title:       title,
		Description: description,
		Type:        models.MediaTypeFromMime(mimetype),
		URL:         ms.publicPath + "/" + storedName,
		Filename:    fileHeader.Filename,
		Size:        size,
		Mimetype:    mimetype,
		CreatedAt:   time.Now(),
	}

	if err := ms.mediaRepo.Insert(ctx, media); err != nil {
		if rmErr := ms.store.Remove(storedName); rmErr != nil {
			log.Printf("Warning: Failed to remove orphaned file %s: %v", storedName, rmErr)
		}
		return nil, fmt.Errorf("error saving media metadata: %w", err)
	}

	if err := ms.eventPublisher.PublishMediaUploaded(ctx, media.ID.Hex(), media.Type, media.Filename); err != nil {
		log.Printf("Warning: Failed to publish media uploaded event: %v", err)
	}

	return media, nil
}

func (ms *MediaService) List(ctx context.Context, page, limit int) ([]*models.Media, int64, error) {
	media, err := ms.mediaRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := ms.mediaRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return media, total, nil
}

// Delete removes the stored file and the metadata record together. The file
// goes first; if that fails the record stays so nothing dangles without its
// object. A file already missing on disk is tolerated.
func (ms *MediaService) Delete(ctx context.Context, id bson.ObjectID) error {
	media, err := ms.mediaRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return ErrNotFound
	}

	if err := ms.store.Remove(path.Base(media.URL)); err != nil {
		return fmt.Errorf("error removing stored file: %w", err)
	}

	deleted, err := ms.mediaRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	if err := ms.eventPublisher.PublishMediaDeleted(ctx, id.Hex()); err != nil {
		log.Printf("Warning: Failed to publish media deleted event: %v", err)
	}
	return nil
}

func (ms *MediaService) Count(ctx context.Context) (int64, error) {
	return ms.mediaRepo.Count(ctx)
}
