package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"teslo/internal/apperr"
	"teslo/internal/logger"
	"teslo/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const productImagePrefix = "products/"

var allowedImageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

// ProductImageFile is a stored product image read back for serving.
type ProductImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileService accepts product image uploads and serves them back.
type FileService struct {
	store    storage.Store
	hostAPI  string
	maxBytes int64
	log      *logger.Logger
}

// NewFileService creates a new FileService. Public URLs are built from
// hostAPI; uploads larger than maxBytes are refused.
func NewFileService(store storage.Store, hostAPI string, maxBytes int64, log *logger.Logger) *FileService {
	if log == nil {
		log = logger.Nop()
	}
	return &FileService{
		store:    store,
		hostAPI:  strings.TrimRight(hostAPI, "/"),
		maxBytes: maxBytes,
		log:      log,
	}
}

// UploadProductImage stores an image under a fresh name and returns the
// public URL it can be fetched from. declaredType is the MIME type the
// client sent with the file.
func (s *FileService) UploadProductImage(ctx context.Context, declaredType string, body io.Reader) (string, error) {
	ext, ok := imageExtension(declaredType)
	if !ok {
		return "", apperr.Invalid("Make sure the file is an image")
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return "", apperr.Invalid("Make sure the file is an image")
	}
	if len(data) == 0 {
		return "", apperr.Invalid("Make sure the file is an image")
	}
	if int64(len(data)) > s.maxBytes {
		return "", apperr.Invalid(fmt.Sprintf("File exceeds the %d bytes limit", s.maxBytes))
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", apperr.Invalid("Make sure the file is an image")
	}

	name := uuid.NewString() + "." + ext
	if err := s.store.Put(ctx, productImagePrefix+name, detected.String(), bytes.NewReader(data)); err != nil {
		s.log.Error("failed to store product image", "name", name, "error", err)
		return "", apperr.Internal(err)
	}

	s.log.Info("stored product image", "name", name, "bytes", len(data))
	return s.hostAPI + "/files/product/" + name, nil
}

// OpenProductImage reads a stored product image by the name returned on upload.
func (s *FileService) OpenProductImage(ctx context.Context, name string) (*ProductImageFile, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, apperr.Invalid("Invalid image name")
	}

	rc, err := s.store.Get(ctx, productImagePrefix+name)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, apperr.NotFound("No product found with image %s", name)
		}
		s.log.Error("failed to open product image", "name", name, "error", err)
		return nil, apperr.Internal(err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		s.log.Error("failed to read product image", "name", name, "error", err)
		return nil, apperr.Internal(err)
	}

	return &ProductImageFile{
		Name:        name,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

// imageExtension returns the file extension for an accepted image MIME type.
func imageExtension(mimeType string) (string, bool) {
	mediaType, _, _ := strings.Cut(mimeType, ";")
	_, sub, ok := strings.Cut(strings.TrimSpace(strings.ToLower(mediaType)), "/")
	if !ok || !allowedImageExtensions[sub] {
		return "", false
	}
	return sub, true
}
