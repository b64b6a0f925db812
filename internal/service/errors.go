package service

import "errors"

var (
	ErrInvalidID  = errors.New("id must be a positive integer")
	ErrNotFound   = errors.New("not found")
	ErrReaderNil  = errors.New("reader is nil")
	ErrValidation = errors.New("validation failed")
)

// Validation error codes, surfaced to HTTP clients as-is.
const (
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	CodeFilenameRequired    = "FILENAME_REQUIRED"
	CodeFilenameTooLong     = "FILENAME_TOO_LONG"
	CodeEmptyContent        = "EMPTY_CONTENT"
	CodeInvalidEncoding     = "INVALID_ENCODING"
	CodeScoreRequired       = "SCORE_REQUIRED"
	CodeInvalidScore        = "INVALID_SCORE"
	CodeAmbiguousSubmission = "AMBIGUOUS_SUBMISSION"
	CodeDocIDRequired       = "DOC_ID_REQUIRED"
	CodeInvalidAnswer       = "INVALID_ANSWER"
	CodeTooManyAnswers      = "TOO_MANY_ANSWERS"
	CodeEmptyQuiz           = "EMPTY_QUIZ"
)

// ValidationError reports rejected input. errors.Is(err, ErrValidation) holds for every instance.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(code, message string) error {
	return &ValidationError{Code: code, Message: message}
}
