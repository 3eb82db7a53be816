package job

import (
	"net/http"

	"github.com/Abraxas-365/skillbridge/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeInvalidPagination = ErrRegistry.Register("INVALID_PAGINATION", errx.TypeValidation, http.StatusBadRequest, "Page and limit must be positive")
	CodeMatchFailed       = ErrRegistry.Register("MATCH_FAILED", errx.TypeExternal, http.StatusBadGateway, "Could not query job matches")
	CodeStoreFailed       = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Job store operation failed")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrInvalidPagination() *errx.Error {
	return ErrRegistry.New(CodeInvalidPagination)
}

func ErrMatchFailed() *errx.Error {
	return ErrRegistry.New(CodeMatchFailed)
}

func ErrStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeStoreFailed)
}

// Ingestion error registry
var IngestionErrRegistry = errx.NewRegistry("INGESTION")

var (
	CodeFeedNotConfigured = IngestionErrRegistry.Register("FEED_NOT_CONFIGURED", errx.TypeInternal, http.StatusInternalServerError, "Job feed credentials are missing")
	CodeAlreadyRunning    = IngestionErrRegistry.Register("ALREADY_RUNNING", errx.TypeConflict, http.StatusConflict, "An ingestion run is already in progress")
	CodeFlushFailed       = IngestionErrRegistry.Register("FLUSH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Could not clear previous job generation")
	CodeInvalidRequest    = IngestionErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid ingestion request")
	CodeEnqueueFailed     = IngestionErrRegistry.Register("ENQUEUE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Could not enqueue ingestion task")
)

func ErrFeedNotConfigured() *errx.Error {
	return IngestionErrRegistry.New(CodeFeedNotConfigured)
}

func ErrIngestionAlreadyRunning() *errx.Error {
	return IngestionErrRegistry.New(CodeAlreadyRunning)
}

func ErrFlushFailed() *errx.Error {
	return IngestionErrRegistry.New(CodeFlushFailed)
}

func ErrInvalidIngestionRequest() *errx.Error {
	return IngestionErrRegistry.New(CodeInvalidRequest)
}

func ErrEnqueueFailed() *errx.Error {
	return IngestionErrRegistry.New(CodeEnqueueFailed)
}
