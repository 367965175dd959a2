package dispatcher

import "errors"

var (
	// ErrNilResponse 传输层返回空响应
	ErrNilResponse = errors.New("transport returned nil response")

	// ErrUnexpectedStatus 非 2xx 状态码
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrValidationFailed 响应未通过校验
	ErrValidationFailed = errors.New("response validation failed")

	// ErrValidatorPanic 校验器 panic
	ErrValidatorPanic = errors.New("validator panicked")
)
