package constants

import (
	"errors"
	"net/http"
)

// CodedError несёт HTTP код, который отдаёт httpErrorHandler.
type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound        = NewCodedError("not found", http.StatusNotFound)
	ErrReferenceNotFound = NewCodedError("reference not found", http.StatusNotFound)
	ErrValidation        = NewCodedError("validation failure", http.StatusBadRequest)
	ErrBadRequest        = NewCodedError("bad request", http.StatusBadRequest)
	ErrUnauthorized      = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrAlreadyExists     = NewCodedError("already exists", http.StatusConflict)
	ErrThreeTierArea     = NewCodedError("Can not add the three-tier study-area.", http.StatusBadRequest)
)

// CodeOf возвращает код первой CodedError в цепочке.
func CodeOf(err error) int {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return http.StatusInternalServerError
}
