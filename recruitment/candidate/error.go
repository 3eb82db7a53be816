package candidate

import (
	"net/http"

	"github.com/Abraxas-365/skillbridge/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Error codes
var (
	CodeCandidateNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeInvalidEmail      = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid email format")
	CodeInvalidFileType   = ErrRegistry.Register("INVALID_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Only PDF resumes are accepted")
	CodeFileTooLarge      = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "Resume exceeds the size limit")
	CodeEmptyResume       = ErrRegistry.Register("EMPTY_RESUME", errx.TypeValidation, http.StatusUnprocessableEntity, "No text could be extracted from the resume")
	CodeResumeReadFailed  = ErrRegistry.Register("RESUME_READ_FAILED", errx.TypeValidation, http.StatusUnprocessableEntity, "Resume could not be read")
	CodeUploadFailed      = ErrRegistry.Register("UPLOAD_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to store resume")
	CodeEmbeddingFailed   = ErrRegistry.Register("EMBEDDING_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to index resume")
	CodeStoreFailed       = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Candidate store operation failed")
)

// Helper functions
func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrInvalidFileType() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileType)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrEmptyResume() *errx.Error {
	return ErrRegistry.New(CodeEmptyResume)
}

func ErrResumeReadFailed() *errx.Error {
	return ErrRegistry.New(CodeResumeReadFailed)
}

func ErrUploadFailed() *errx.Error {
	return ErrRegistry.New(CodeUploadFailed)
}

func ErrEmbeddingFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbeddingFailed)
}

func ErrStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeStoreFailed)
}
