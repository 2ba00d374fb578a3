package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/http/middleware"
	"courierdesk/internal/storage"
	"courierdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20 // per file

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// POST /api/bookings/upload-images
// Multipart fields packageImages[] and invoiceImages[]; any single failure
// fails the whole request so the client never submits a half-uploaded set.
func UploadBookingImages(c *gin.Context) {
	if objectStore == nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "object storage unavailable", nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "multipart form expected", nil)
		return
	}

	pkgFiles := formFiles(form, "packageImages")
	invFiles := formFiles(form, "invoiceImages")
	if len(pkgFiles)+len(invFiles) == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "no files provided", nil)
		return
	}

	pkgRefs, err := storeAll(c, "package", pkgFiles)
	if err != nil {
		discardObjects(c, pkgRefs)
		RespondDomainError(c, err)
		return
	}
	invRefs, err := storeAll(c, "invoice", invFiles)
	if err != nil {
		discardObjects(c, append(pkgRefs, invRefs...))
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "uploads", "store",
		fmt.Sprintf("package=%d invoice=%d", len(pkgRefs), len(invRefs)))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"packageImages": pkgRefs,
			"invoiceImages": invRefs,
		},
	})
}

func formFiles(form *multipart.Form, field string) []*multipart.FileHeader {
	if fs, ok := form.File[field+"[]"]; ok {
		return fs
	}
	return form.File[field]
}

// storeAll returns the refs stored so far even on failure so the caller can
// discard them.
func storeAll(c *gin.Context, kind string, files []*multipart.FileHeader) ([]models.ImageRef, error) {
	out := []models.ImageRef{}
	for _, fh := range files {
		ref, err := storeOne(c, kind, fh)
		if err != nil {
			return out, err
		}
		out = append(out, ref)
	}
	return out, nil
}

// discardObjects best-effort deletes objects left behind by a rejected
// upload so the bucket carries no orphans.
func discardObjects(c *gin.Context, refs []models.ImageRef) {
	for _, ref := range refs {
		if err := objectStore.Delete(c.Request.Context(), ref.URL); err != nil {
			utils.LogEvent(middleware.GetRequestID(c), "uploads", "discard",
				"url="+ref.URL+" err="+err.Error())
		}
	}
}

func storeOne(c *gin.Context, kind string, fh *multipart.FileHeader) (models.ImageRef, error) {
	var ref models.ImageRef
	if fh.Size > maxUploadBytes {
		return ref, validationErr(fh.Filename, "file exceeds the 10MB limit")
	}

	f, err := fh.Open()
	if err != nil {
		return ref, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return ref, err
	}
	if int64(len(data)) > maxUploadBytes {
		return ref, validationErr(fh.Filename, "file exceeds the 10MB limit")
	}

	contentType := http.DetectContentType(data)
	if !allowedUploadTypes[contentType] {
		return ref, validationErr(fh.Filename, "only jpeg, png, webp or pdf files are accepted")
	}

	key := storage.ObjectKey(kind, fh.Filename)
	url, err := objectStore.Put(c.Request.Context(), key, data, contentType)
	if err != nil {
		return ref, err
	}

	return models.ImageRef{
		URL:      url,
		FileName: fh.Filename,
		FileSize: fh.Size,
		MimeType: contentType,
	}, nil
}
