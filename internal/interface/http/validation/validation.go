// Package validation 把请求绑定错误转换为统一的字段级错误
//
// 错误来源有三类：
//   - validator.ValidationErrors：binding tag校验失败（缺少字段、空字符串、超长、页数<=0）
//   - *json.UnmarshalTypeError：字段类型不对（"pages": "many"）
//   - 其他JSON错误：请求体不是合法JSON或为空
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/books-api/pkg/errors"
)

// InvalidRequestMessage 校验失败时的统一提示
const InvalidRequestMessage = "Invalid request body"

var setupOnce sync.Once

// Setup 让validator使用json tag作为字段名（错误里返回isbn而不是ISBN）
// 可以多次调用，只有第一次生效
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// BindJSON 绑定并校验JSON请求体，失败时返回可直接交给response.Error的AppError
func BindJSON(c *gin.Context, obj interface{}) error {
	Setup()
	if err := c.ShouldBindJSON(obj); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate 绑定错误 → AppError
func Translate(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, apperrors.FieldError{
				Field:   fe.Field(),
				Message: fieldMessage(fe),
			})
		}
		return apperrors.NewValidation(InvalidRequestMessage, details)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			return apperrors.ErrBindError.WithMessage("Request body must be a JSON object")
		}
		return apperrors.NewValidation(InvalidRequestMessage, []apperrors.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("%s must be %s", field, kindName(typeErr.Type)),
		}})
	}

	if errors.Is(err, io.EOF) {
		return apperrors.ErrBindError.WithMessage("Request body is required")
	}
	return apperrors.ErrBindError
}

// CheckISBNUnchanged 更新请求中出现isbn时必须与路径一致（ISBN不可修改）
func CheckISBNUnchanged(pathISBN string, bodyISBN *string) error {
	if bodyISBN == nil || *bodyISBN == pathISBN {
		return nil
	}
	return apperrors.NewValidation(InvalidRequestMessage, []apperrors.FieldError{{
		Field:   "isbn",
		Message: "isbn cannot be changed",
	}})
}

// fieldMessage 按校验tag生成提示
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return field + " must not be empty"
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "of a different type"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.String:
		return "a string"
	default:
		return "a " + t.Kind().String()
	}
}
