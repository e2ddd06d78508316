package intake

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"audiofields-backend/internal/shared/metrics"
	"audiofields-backend/internal/shared/server/respond"
	"audiofields-backend/internal/shared/storage/object"
	"audiofields-backend/internal/shared/util"
	"audiofields-backend/internal/spreadsheets"
)

const defaultMaxUploadSize = 64 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	Store          object.ObjectStore
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive limit selects the default.
func NewHandler(svc *Service, store object.ObjectStore, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadSize
	}
	return &Handler{Svc: svc, Store: store, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches the analyze and download routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/analyze", h.analyze)
	r.POST("/download", h.download)
}

func (h *Handler) analyze(c *gin.Context) {
	start := time.Now()
	status := http.StatusInternalServerError
	defer func() {
		metrics.ObserveAnalyze(status, float64(time.Since(start).Milliseconds()))
	}()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
			respond.Error(c, status, respond.CodeValidation, "upload exceeds size limit", nil)
			return
		}
		status = http.StatusBadRequest
		respond.Error(c, status, respond.CodeValidation, "invalid multipart form", nil)
		return
	}

	req, err := readRequest(form)
	if err != nil {
		status = http.StatusBadRequest
		respond.Error(c, status, respond.CodeValidation, "unable to read uploaded file", nil)
		return
	}
	c.Set("audioCount", len(req.Audios))

	result, err := h.Svc.Process(c.Request.Context(), req)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			status = http.StatusBadRequest
			var details interface{}
			if vErr.Details != nil {
				details = vErr.Details
			}
			respond.Error(c, status, respond.CodeValidation, vErr.Message, details)
			return
		}
		respond.Error(c, status, respond.CodeInternal, "failed to process uploads", nil)
		_ = c.Error(err)
		return
	}

	status = http.StatusCreated
	if result.Partial() {
		status = http.StatusMultiStatus
	}
	c.Set("failedAudioCount", len(result.Failed))
	respond.JSON(c, status, toResponse(result))
}

func readRequest(form *multipart.Form) (Request, error) {
	var req Request
	if files := form.File["excel"]; len(files) > 0 {
		upload, err := readUpload(files[0])
		if err != nil {
			return Request{}, err
		}
		req.Excel = &upload
	}
	for _, fh := range form.File["audios"] {
		upload, err := readUpload(fh)
		if err != nil {
			return Request{}, err
		}
		req.Audios = append(req.Audios, upload)
	}
	return req, nil
}

func readUpload(fh *multipart.FileHeader) (Upload, error) {
	file, err := fh.Open()
	if err != nil {
		return Upload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Upload{}, err
	}
	return Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *Handler) download(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "filename is required", nil)
		return
	}

	key, err := util.SanitizeFileName(req.Filename)
	if err != nil {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, msgFileMissing, nil)
		return
	}

	rc, err := h.Store.Open(c.Request.Context(), object.TempKey(key))
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, msgFileMissing, nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to open file", nil)
		_ = c.Error(err)
		return
	}
	defer rc.Close()

	respond.Attachment(c, key, spreadsheets.MIMEType, rc)
}
