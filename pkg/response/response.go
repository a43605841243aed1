package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/pkg/apperror"
)

// upstreamError is satisfied by client.APIError without importing the client.
type upstreamError interface {
	error
	HTTPStatus() int
	Message() string
	FieldErrors() map[string]string
}

var log = zap.NewNop()

// SetLogger installs the logger used for internal errors.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// ParamID parses a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, apperror.New(http.StatusBadRequest, "invalid "+name, apperror.ErrBadRequest)
	}
	return id, nil
}

// Confirmed reports whether a destructive request carries ?confirm=true.
func Confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	ResponseErrorWith(c, err, nil)
}

// ResponseErrorWith adds extra members, such as the state a failed step left
// behind, to the error body.
func ResponseErrorWith(c *gin.Context, err error, extra gin.H) {
	code, body := errorBody(c, err)
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}

func errorBody(c *gin.Context, err error) (int, gin.H) {
	var upstream upstreamError
	if errors.As(err, &upstream) {
		if fields := upstream.FieldErrors(); len(fields) > 0 {
			return http.StatusUnprocessableEntity, gin.H{"error": upstream.Message(), "fields": fields}
		}
		code := upstream.HTTPStatus()
		if code >= http.StatusInternalServerError {
			log.Error("backend error", zap.Error(err), zap.String("path", c.FullPath()))
			code = http.StatusBadGateway
		}
		return code, gin.H{"error": upstream.Message()}
	}

	code := apperror.MapErrorToStatus(err)
	if fields, ok := apperror.FieldsOf(err); ok {
		return code, gin.H{"error": err.Error(), "fields": fields}
	}

	// Log internal errors
	if code >= http.StatusInternalServerError {
		log.Error("internal error", zap.Error(err), zap.String("path", c.FullPath()))
	}

	return code, gin.H{"error": err.Error()}
}
