package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed client-declared MIME types.
// The dashboard only ingests .xlsx workbooks; browsers occasionally send
// octet-stream for them, so that is tolerated and settled by the magic-byte check.
var AllowedClientContentTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel": true, // some browsers still declare this for xlsx
	"application/octet-stream": true,
	"application/zip":          true, // xlsx is a zip container
	"text/csv":                 false,
	"text/plain":               false,
}

// xlsx files are OPC/zip containers; every variant starts with "PK".
var zipMagic = [][]byte{
	{0x50, 0x4B, 0x03, 0x04},
	{0x50, 0x4B, 0x05, 0x06}, // empty archive
	{0x50, 0x4B, 0x07, 0x08}, // spanned archive
}

// Legacy .xls (CFB) signature, rejected with a specific message.
var cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	normalized := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if normalized == "" {
		// Some clients omit the part's Content-Type entirely; the magic-byte
		// check is the authoritative gate.
		return nil
	}
	if allowed, exists := AllowedClientContentTypes[normalized]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for workbook upload", contentType)
	}
	return nil
}

// ValidateWorkbookMagicBytes checks the actual file content signature
// to confirm the upload really is an .xlsx (zip) container before the
// parser sees it.
func ValidateWorkbookMagicBytes(file io.ReadSeeker) error {
	if file == nil {
		return fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 8)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// IMPORTANT: Reset the file read pointer to the beginning so the actual parser can read the full file.
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if n == 0 {
		return fmt.Errorf("file is empty")
	}

	if n >= len(cfbMagic) && bytes.Equal(buffer[:len(cfbMagic)], cfbMagic) {
		logger.L.Warn("File rejected: legacy .xls upload")
		return fmt.Errorf("legacy .xls workbooks are not supported; please re-save as .xlsx")
	}

	for _, magic := range zipMagic {
		if n >= len(magic) && bytes.Equal(buffer[:len(magic)], magic) {
			logger.L.Debug("Workbook magic bytes validated")
			return nil
		}
	}

	logger.L.Warn("File rejected: not an xlsx container")
	return fmt.Errorf("file does not look like an .xlsx workbook")
}
