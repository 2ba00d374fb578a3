package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"courierdesk/internal/storage"

	"github.com/gin-gonic/gin"
)

type fakeObjectStore struct {
	puts    []string
	deletes []string
}

func (f *fakeObjectStore) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	f.puts = append(f.puts, key)
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, fileURL string) error {
	f.deletes = append(f.deletes, fileURL)
	return nil
}

var _ storage.ObjectStore = (*fakeObjectStore)(nil)

func uploadTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/bookings/upload-images", UploadBookingImages)
	return r
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for field, data := range files {
		fw, err := mw.CreateFormFile(field, "upload.bin")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, mw.FormDataContentType()
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n sufficient header for sniffing")

func TestUploadBookingImagesStoresFiles(t *testing.T) {
	fs := &fakeObjectStore{}
	prev := objectStore
	objectStore = fs
	defer func() { objectStore = prev }()

	body, contentType := multipartBody(t, map[string][]byte{
		"packageImages[]": pngBytes,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/upload-images", body)
	req.Header.Set("Content-Type", contentType)
	uploadTestRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(fs.puts) != 1 || len(fs.deletes) != 0 {
		t.Fatalf("puts = %v, deletes = %v", fs.puts, fs.deletes)
	}
}

func TestUploadBookingImagesDiscardsOnRejection(t *testing.T) {
	fs := &fakeObjectStore{}
	prev := objectStore
	objectStore = fs
	defer func() { objectStore = prev }()

	// the package image stores fine, the invoice file is not an accepted
	// type, so the whole request fails and the stored object is removed
	body, contentType := multipartBody(t, map[string][]byte{
		"packageImages[]": pngBytes,
		"invoiceImages[]": []byte("plain text, not an image"),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/upload-images", body)
	req.Header.Set("Content-Type", contentType)
	uploadTestRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(fs.puts) != 1 {
		t.Fatalf("expected one stored object before rejection, got %v", fs.puts)
	}
	if len(fs.deletes) != 1 || fs.deletes[0] != "https://cdn.example.com/"+fs.puts[0] {
		t.Fatalf("stored object not discarded: %v", fs.deletes)
	}
}
