package apperror

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind phân loại lỗi theo cách client cần xử lý
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error là lỗi có Kind + message an toàn để trả về client.
// Err (nếu có) là nguyên nhân gốc, giữ lại để log và in stack.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New tạo sentinel error, dùng cho các biến ErrXxx của domain
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap gắn Kind + message cho một lỗi hạ tầng, kèm stack trace
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: errors.WithStack(err)}
}

// Validation tạo ValidationError từ lỗi validate (ozzo) hoặc message tự do
func Validation(message string, cause error) error {
	return &Error{Kind: KindValidation, Message: message, Err: cause}
}

// Upstream bọc lỗi từ object storage, SMTP, queue...
func Upstream(err error, message string) error {
	return Wrap(KindUpstream, err, message)
}

// KindOf trả về Kind của lỗi đầu tiên trong chain, mặc định KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// PublicMessage trả về message hiển thị cho client
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		if appErr.Kind == KindValidation && appErr.Err != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
		}
		return appErr.Message
	}
	return "Internal server error"
}

// HTTPStatus map Kind sang HTTP status code
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
