// Package files stores uploaded case documents on disk and their
// metadata in the database.
package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/subhamroy/case-registry/internal/database"
	"github.com/subhamroy/case-registry/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("file not found")
	ErrCaseNotFound = errors.New("case not found")
	ErrNoFile       = errors.New("no file selected")
	ErrFileType     = errors.New("files of this type are not allowed")
	ErrFileTooLarge = errors.New("file exceeds the maximum upload size")
)

// allowedTypes lists the accepted upload types; both the original
// extension and the declared MIME type must match one of them.
var allowedTypes = []string{"jpeg", "jpg", "png", "gif", "pdf", "doc", "docx"}

// Storage owns the upload directory and the case_files table.
type Storage struct {
	db      *gorm.DB
	log     *logger.Logger
	dir     string
	maxSize int64
}

func NewStorage(db *gorm.DB, log *logger.Logger, dir string, maxSize int64) (*Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Storage{
		db:      db,
		log:     log.With("component", "files"),
		dir:     dir,
		maxSize: maxSize,
	}, nil
}

// Save validates the upload, writes the blob to disk, and records its
// metadata against the case.
func (s *Storage) Save(ctx context.Context, caseID uint, header *multipart.FileHeader) (*database.CaseFile, error) {
	if header == nil {
		return nil, ErrNoFile
	}
	if header.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	mimeType := header.Header.Get("Content-Type")
	if !typeAllowed(ext) || !mimeAllowed(mimeType) {
		return nil, ErrFileType
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&database.Case{}).
		Where("id = ?", caseID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCaseNotFound
	}

	storedName := fmt.Sprintf("caseFile-%s.%s", uuid.NewString(), ext)
	storedPath := filepath.Join(s.dir, storedName)
	if err := s.writeBlob(header, storedPath); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	record := database.CaseFile{
		CaseID:       caseID,
		OriginalName: header.Filename,
		StoredName:   storedName,
		FilePath:     storedPath,
		MimeType:     mimeType,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save file metadata: %w", err)
	}
	return &record, nil
}

// ListForCase returns the case's file metadata, newest first.
func (s *Storage) ListForCase(ctx context.Context, caseID uint) ([]database.CaseFile, error) {
	records := []database.CaseFile{}
	err := s.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("uploaded_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes the blob from disk and then the metadata row. If the
// blob removal fails the row is kept, so the delete can be retried; a
// blob that is already gone does not block removing the row.
func (s *Storage) Delete(ctx context.Context, fileID uint) error {
	var record database.CaseFile
	if err := s.db.WithContext(ctx).First(&record, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := os.Remove(record.FilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file from disk: %w", err)
	}

	return s.db.WithContext(ctx).Delete(&database.CaseFile{}, fileID).Error
}

func (s *Storage) writeBlob(header *multipart.FileHeader, dst string) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func typeAllowed(ext string) bool {
	for _, t := range allowedTypes {
		if ext == t {
			return true
		}
	}
	return false
}

// mimeAllowed checks the declared content type the same way the
// extension is checked: any allowed type name appearing in it counts,
// so application/pdf and image/jpeg both pass.
func mimeAllowed(mimeType string) bool {
	lower := strings.ToLower(mimeType)
	for _, t := range allowedTypes {
		if strings.Contains(lower, t) {
			return true
		}
	}
	// .doc/.docx arrive as vnd.ms-word / officedocument types.
	return strings.Contains(lower, "msword") || strings.Contains(lower, "officedocument")
}
