package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadRejectsUnsupportedType(t *testing.T) {
	s := &MediaService{maxBytes: 1024}

	_, err := s.Upload(context.Background(), "application/zip", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = s.Upload(context.Background(), "text/html", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	s := &MediaService{maxBytes: 100}

	_, err := s.Upload(context.Background(), "image/png", 101, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestStorageKeyHasExtensionAndDatePrefix(t *testing.T) {
	key := storageKey(".pdf")
	assert.True(t, strings.HasPrefix(key, "media/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
}
