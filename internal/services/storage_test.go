package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestIsAllowedExtension(t *testing.T) {
	assert.True(t, IsAllowedExtension("cv.PDF"))
	assert.True(t, IsAllowedExtension("cv.docx"))
	assert.True(t, IsAllowedExtension("cv.txt"))
	assert.False(t, IsAllowedExtension("cv.exe"))
	assert.False(t, IsAllowedExtension("cv"))
}

func TestStorageService_SaveReadDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDir())

	name, path, err := storage.SaveFile(multipartFile(t, "cvs", "Jane.TXT", []byte("Jane Doe")), "cv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "cv_"))
	assert.Equal(t, ".txt", filepath.Ext(name))
	assert.Equal(t, filepath.Join(dir, name), path)

	data, err := storage.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", string(data))

	require.NoError(t, storage.DeleteFile(name))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, storage.DeleteFile(name), ErrFileNotFound)
	_, err = storage.ReadFile(name)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestStorageService_RejectsUnknownExtension(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	_, _, err := storage.SaveFile(multipartFile(t, "cvs", "payload.sh", []byte("echo")), "cv")

	assert.Error(t, err)
}

func TestStorageService_GetFilePathStaysInUploadDir(t *testing.T) {
	storage := NewStorageService("/srv/uploads")

	assert.Equal(t, filepath.Join("/srv/uploads", "passwd"), storage.GetFilePath("../../etc/passwd"))
}
