package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/domain/auth"
	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/jwt"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/validator"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
)

func TestHandleError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"validation", validator.ValidationErrors{{Field: "email", Message: "email is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"claims", fmt.Errorf("%w: no token", jwt.ErrMissingClaims), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"employee missing", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"email taken", employee.ErrEmailExists, http.StatusConflict, "CONFLICT"},
		{"manager only", employee.ErrManagerAccessRequired, http.StatusForbidden, "FORBIDDEN"},
		{"double check-in", fmt.Errorf("check in: %w", attendance.ErrAlreadyCheckedIn), http.StatusBadRequest, "BAD_REQUEST"},
		{"no check-in", attendance.ErrNotCheckedIn, http.StatusBadRequest, "BAD_REQUEST"},
		{"bad range", worktime.ErrInvalidRange, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			HandleError(w, c.err)

			assert.Equal(t, c.want, w.Code)
			var resp Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, c.code, resp.Error.Code)
		})
	}
}

func TestList_EmptySlice(t *testing.T) {
	w := httptest.NewRecorder()

	List[string](w, nil, 100)

	assert.JSONEq(t, `{"success":true,"data":[],"meta":{"limit":100,"total_items":0}}`, w.Body.String())
}
