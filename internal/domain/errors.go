package domain

import "errors"

var (
	// ErrFirmNotFound signals an unknown firm identifier or slug.
	ErrFirmNotFound = errors.New("firm not found")
	// ErrPostNotFound signals an unknown blog post slug.
	ErrPostNotFound = errors.New("blog post not found")
	// ErrTermNotFound signals an unknown glossary term.
	ErrTermNotFound = errors.New("glossary term not found")
	// ErrQuestionNotFound signals an answer referencing an undefined question.
	ErrQuestionNotFound = errors.New("quiz question not found")
	// ErrQuizIncomplete signals a result request before the last question was answered.
	ErrQuizIncomplete = errors.New("quiz not complete")
	// ErrQuizComplete signals an answer submitted after the last question.
	ErrQuizComplete = errors.New("quiz already complete")
	// ErrInvalidCatalog signals malformed catalog data.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
