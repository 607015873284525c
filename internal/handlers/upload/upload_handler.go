// internal/handlers/upload/upload_handler.go
package upload

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	domain "glam-admin/internal/domain/upload"
	"glam-admin/internal/handlers"
	xerrors "glam-admin/internal/pkg/errors"
	"glam-admin/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxFormMemory = 32 << 20

// Uploader is the media side of the console.
type Uploader interface {
	UploadBatch(ctx context.Context, files []domain.File, existing int) ([]domain.Asset, error)
	DeleteAsset(ctx context.Context, assetID string)
}

type UploadHandler struct {
	uploader Uploader
	sessions handlers.SessionClearer
	logger   *zap.Logger
}

func NewUploadHandler(uploader Uploader, sessions handlers.SessionClearer, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		sessions: sessions,
		logger:   logger,
	}
}

// Upload takes one or more "file" parts. "existing" is how many images the
// draft already holds and counts against the batch limit.
func (h *UploadHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		response.BadRequest(c, "multipart form with at least one file is required")
		return
	}
	headers := c.Request.MultipartForm.File["file"]
	if len(headers) == 0 {
		response.BadRequest(c, "at least one file is required")
		return
	}
	existing, _ := strconv.Atoi(c.PostForm("existing"))

	files := make([]domain.File, 0, len(headers))
	for _, fh := range headers {
		f, err := openPart(fh)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		defer f.Close()
		files = append(files, domain.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	assets, err := h.uploader.UploadBatch(c.Request.Context(), files, existing)
	if err != nil {
		if handlers.IsSessionError(err) {
			handlers.Fail(c, h.sessions, h.logger, err, "")
			return
		}
		// Successful uploads of a partly failed batch still go back to the draft.
		status, code := response.StatusOf(err)
		response.Error(c, status, code, xerrors.UserMessage(err, "Upload failed"), gin.H{"assets": assets})
		return
	}
	response.Success(c, http.StatusCreated, "uploaded", gin.H{"assets": assets})
}

type deleteRequest struct {
	AssetID string `json:"assetId" binding:"required"`
}

// Delete is best-effort and always succeeds for a well-formed request.
func (h *UploadHandler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "assetId is required")
		return
	}
	h.uploader.DeleteAsset(c.Request.Context(), req.AssetID)
	response.Success(c, http.StatusOK, "", nil)
}

func openPart(fh *multipart.FileHeader) (multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("could not read %s", fh.Filename)
	}
	return f, nil
}
