package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func TestNormalizeDetail(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		want   string
	}{
		{name: "string", detail: `"Student not found"`, want: "Student not found"},
		{name: "validation list", detail: `[{"loc":["body","email"],"msg":"value is not a valid email"},{"loc":["body","nis"],"msg":"Value error, NIS taken"}]`, want: "value is not a valid email, NIS taken"},
		{name: "object with message", detail: `{"message":"quota exceeded","code":7}`, want: "quota exceeded"},
		{name: "object without message", detail: `{"code":7}`, want: `{"code":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDetail(json.RawMessage(tt.detail)))
		})
	}
}

func TestNewAPIError(t *testing.T) {
	err := newAPIError(http.StatusUnprocessableEntity, []byte(`{"detail":[{"loc":["body","class_id"],"msg":"Value error, class is full"},{"loc":["body","class_id"],"msg":"second"}]}`))
	assert.True(t, err.IsValidation())
	assert.Equal(t, map[string]string{"class_id": "class is full"}, err.FieldErrors())

	err = newAPIError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	assert.Equal(t, "<html>bad gateway</html>", err.Message())
	assert.False(t, err.IsValidation())

	err = newAPIError(http.StatusServiceUnavailable, nil)
	assert.Equal(t, "Service Unavailable", err.Message())
	assert.Equal(t, "backend returned 503: Service Unavailable", err.Error())
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[{"id":3,"name":"Budi","email":"budi@school.id","role":"student","nis":"1001","gender":"male"}]`)
	}))
	defer srv.Close()

	base := New(srv.URL + "/")
	classID := 4
	students, err := base.WithToken("tok-1").ListStudents(context.Background(), entity.UserFilter{ClassID: &classID, Search: "bud"})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "class_id=4&role=student&search=bud", gotQuery)
	assert.Equal(t, "Budi", students[0].Name)
	assert.Equal(t, "male", students[0].Gender)
	assert.Empty(t, base.Token(), "WithToken must not mutate the shared client")
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Class not found"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetClass(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, "Class not found", ErrorMessage(err))
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithTimeout(20*time.Millisecond)).ListAcademicYears(context.Background())
	require.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusGatewayTimeout))
	assert.Contains(t, ErrorMessage(err), "/academic-years/")
}

func TestClient_Multipart(t *testing.T) {
	var fields map[string]string
	var fileName, fileBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		f, fh, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)
		fileName, fileBody = fh.Filename, string(body)
		_, _ = io.WriteString(w, `{"id":1,"name":"Week 1","type":"pdf"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateAttachment(context.Background(), 12, "Week 1", entity.AttachmentType("pdf"),
		File{Field: "file", Name: "week1.pdf", Size: 4, Reader: strings.NewReader("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, "Week 1", fields["name"])
	assert.Equal(t, "week1.pdf", fileName)
	assert.Equal(t, "%PDF", fileBody)
}
