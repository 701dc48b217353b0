package code

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/parkingwang/oasgen/pkg/oas"
)

type CodeError struct {
	Code    int
	Message string
	// Errors 按类别分组的错误信息 仅校验失败时存在
	Errors map[string][]string
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func NewCodeError(code int, msg string, args ...any) error {
	if code == 0 {
		code = http.StatusInternalServerError
	}
	return &CodeError{Code: code, Message: fmt.Sprintf(msg, args...)}
}

// NewNotfoundError 服务器上没有请求的资源。路径错误等。
func NewNotfoundError(v any) error {
	return &CodeError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%v", v),
	}
}

// NewValidationError 文档校验失败 422
func NewValidationError(msg string, errs map[string][]string) error {
	return &CodeError{
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
		Errors:  errs,
	}
}

// FromError 将文档生成过程中的错误转换为CodeError
func FromError(err error) *CodeError {
	if err == nil {
		return nil
	}
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce
	}
	var ve *oas.ValidationError
	if errors.As(err, &ve) {
		return NewValidationError("The given data was invalid.", ve.Messages()).(*CodeError)
	}
	return &CodeError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
