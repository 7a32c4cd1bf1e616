package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/config"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/logger"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/security/validation"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/services"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/utils"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/workbook"
)

type UploadHandler struct {
	dashboardService services.DashboardService
}

func NewUploadHandler(service services.DashboardService) *UploadHandler {
	return &UploadHandler{
		dashboardService: service,
	}
}

// HandleUpload ingests one workbook and responds with the new session
// plus the default Overview payload. Nothing is written to disk; the
// session lives in memory until its TTL lapses.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process upload or the file is too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB (header check)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateWorkbookMagicBytes(file); err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctxLogger.Info("Processing upload request", "filename", fileHeader.Filename, "clientType", clientContentType)

	result, err := h.dashboardService.ProcessUpload(file, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHoldingsMissing):
			ctxLogger.Warn("Upload rejected: holdings sheet missing or empty", "filename", fileHeader.Filename)
			utils.SendJSONError(w, "Couldn't find a non-empty 'Holdings' sheet. Check your workbook tabs.", http.StatusUnprocessableEntity)
		case errors.Is(err, workbook.ErrMalformedWorkbook), errors.Is(err, services.ErrParsingFailed):
			ctxLogger.Warn("Upload rejected: workbook unreadable", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "The file could not be read as an .xlsx workbook.", http.StatusBadRequest)
		default:
			ctxLogger.Error("Upload processing failed", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "Failed to process the uploaded workbook.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		ctxLogger.Error("Error encoding JSON response for upload result", "error", err)
	}
}
