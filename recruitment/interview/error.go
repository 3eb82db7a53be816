package interview

import (
	"net/http"

	"github.com/Abraxas-365/skillbridge/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("INTERVIEW")

var (
	CodeNoSkills          = ErrRegistry.Register("NO_SKILLS", errx.TypeValidation, http.StatusBadRequest, "At least one skill is required")
	CodeGeneratorFailed   = ErrRegistry.Register("GENERATOR_FAILED", errx.TypeExternal, http.StatusBadGateway, "Question generation failed")
	CodeGeneratorNotReady = ErrRegistry.Register("GENERATOR_NOT_READY", errx.TypeExternal, http.StatusServiceUnavailable, "Question generator is not configured")
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")

	CodeTextRequired   = ErrRegistry.Register("TEXT_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Text to speak is required")
	CodeTextTooLong    = ErrRegistry.Register("TEXT_TOO_LONG", errx.TypeValidation, http.StatusBadRequest, "Text to speak is too long")
	CodeAudioRequired  = ErrRegistry.Register("AUDIO_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Audio recording is required")
	CodeAudioTooLarge  = ErrRegistry.Register("AUDIO_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "Audio recording exceeds size limit")
	CodeSpeechNotReady = ErrRegistry.Register("SPEECH_NOT_READY", errx.TypeExternal, http.StatusServiceUnavailable, "Speech service is not configured")
	CodeSpeechFailed   = ErrRegistry.Register("SPEECH_FAILED", errx.TypeExternal, http.StatusBadGateway, "Speech service request failed")
)

func ErrNoSkills() *errx.Error {
	return ErrRegistry.New(CodeNoSkills)
}

func ErrGeneratorFailed() *errx.Error {
	return ErrRegistry.New(CodeGeneratorFailed)
}

func ErrGeneratorNotReady() *errx.Error {
	return ErrRegistry.New(CodeGeneratorNotReady)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrTextRequired() *errx.Error {
	return ErrRegistry.New(CodeTextRequired)
}

func ErrTextTooLong() *errx.Error {
	return ErrRegistry.New(CodeTextTooLong)
}

func ErrAudioRequired() *errx.Error {
	return ErrRegistry.New(CodeAudioRequired)
}

func ErrAudioTooLarge() *errx.Error {
	return ErrRegistry.New(CodeAudioTooLarge)
}

func ErrSpeechNotReady() *errx.Error {
	return ErrRegistry.New(CodeSpeechNotReady)
}
