package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/books-api/pkg/errors"
)

type sampleRequest struct {
	ISBN  *string `json:"isbn" binding:"required,min=1,max=20"`
	Pages *int    `json:"pages" binding:"required,gt=0"`
	Year  *int    `json:"year" binding:"required"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req sampleRequest
	return BindJSON(c, &req)
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	appErr := apperrors.GetAppError(err)
	require.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	fields := make(map[string]string, len(appErr.Details))
	for _, d := range appErr.Details {
		fields[d.Field] = d.Message
	}
	return fields
}

func TestBindJSON_Valid(t *testing.T) {
	// year=0是合法值
	assert.NoError(t, bind(t, `{"isbn":"910584209","pages":1,"year":0}`))
}

func TestBindJSON_MissingFields(t *testing.T) {
	fields := fieldsOf(t, bind(t, `{"isbn":"8419187940"}`))

	assert.Equal(t, "pages is required", fields["pages"])
	assert.Equal(t, "year is required", fields["year"])
	assert.NotContains(t, fields, "isbn")
}

func TestBindJSON_InvalidValues(t *testing.T) {
	fields := fieldsOf(t, bind(t, `{"isbn":"","pages":0,"year":2000}`))

	assert.Equal(t, "isbn must not be empty", fields["isbn"])
	assert.Equal(t, "pages must be greater than 0", fields["pages"])
}

func TestBindJSON_TooLong(t *testing.T) {
	fields := fieldsOf(t, bind(t, `{"isbn":"978-0-13-468599-1-extra","pages":1,"year":2000}`))

	assert.Equal(t, "isbn must be at most 20 characters", fields["isbn"])
}

func TestBindJSON_WrongType(t *testing.T) {
	fields := fieldsOf(t, bind(t, `{"isbn":"8419187940","pages":"many","year":2000}`))

	assert.Equal(t, "pages must be an integer", fields["pages"])
}

func TestBindJSON_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"空请求体", ""},
		{"非法JSON", `{"isbn":`},
		{"不是对象", `["8419187940"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bind(t, tt.body)
			require.Error(t, err)
			appErr := apperrors.GetAppError(err)
			assert.Equal(t, apperrors.ErrCodeBindError, appErr.Code)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())
		})
	}
}

func TestCheckISBNUnchanged(t *testing.T) {
	same := "8419187940"
	other := "0000000000"

	assert.NoError(t, CheckISBNUnchanged("8419187940", nil))
	assert.NoError(t, CheckISBNUnchanged("8419187940", &same))

	fields := fieldsOf(t, CheckISBNUnchanged("8419187940", &other))
	assert.Equal(t, "isbn cannot be changed", fields["isbn"])
}
