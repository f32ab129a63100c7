package filestorage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileHeader builds a multipart.FileHeader the way gin hands it to controllers.
func newFileHeader(t *testing.T, name, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + name + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSaveAndDeleteFile(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	stored, err := ls.SaveFileWithPath(newFileHeader(t, "Worksheet.PDF", "application/pdf", []byte("pdf-bytes")), "courses/3")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.Path, "courses/3/"))
	assert.True(t, strings.HasSuffix(stored.Path, ".pdf"))
	assert.Equal(t, "/uploads/"+stored.Path, stored.URL)
	assert.Equal(t, "Worksheet.PDF", stored.Filename)
	assert.Equal(t, int64(len("pdf-bytes")), stored.FileSize)
	assert.Equal(t, "application/pdf", stored.MimeType)

	content, err := os.ReadFile(ls.GetFullPath(stored.Path))
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))

	require.NoError(t, ls.DeleteFile(stored.Path))
	_, err = os.Stat(ls.GetFullPath(stored.Path))
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is not an error
	assert.NoError(t, ls.DeleteFile(stored.Path))
}

func TestRejectsEscapingPaths(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = ls.SaveFileWithPath(newFileHeader(t, "a.txt", "text/plain", []byte("x")), "../outside")
	assert.True(t, errors.Is(err, ErrInvalidPath))

	assert.True(t, errors.Is(ls.DeleteFile("../../etc/passwd"), ErrInvalidPath))
}
