package serializer

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErr_DetailHiddenInRelease(t *testing.T) {
	cause := errors.New("pq: connection refused on 10.0.0.12:5432")

	gin.SetMode(gin.ReleaseMode)
	res := DBErr("", cause)
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "database error", res.Msg)
	assert.Empty(t, res.Error)

	gin.SetMode(gin.TestMode)
	res = DBErr("", cause)
	assert.Contains(t, res.Error, "connection refused")
}

func TestErrHelpers(t *testing.T) {
	tests := []struct {
		name     string
		res      Response
		wantCode int
		wantMsg  string
	}{
		{"default not found", NotFoundErr(""), http.StatusNotFound, "not found"},
		{"custom not found", NotFoundErr("creation is disabled in this profile"), http.StatusNotFound, "creation is disabled in this profile"},
		{"forbidden", ForbiddenErr(""), http.StatusForbidden, "forbidden"},
		{"auth", AuthErr(""), http.StatusUnauthorized, "authentication error"},
		{"param", ParamErr("", nil), http.StatusBadRequest, "parameter error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.res.Code)
			assert.Equal(t, tt.wantMsg, tt.res.Msg)
		})
	}
}
