package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAndValidateURLParam(t *testing.T) {
	t.Parallel()

	routerTests := []struct {
		name       string
		paramValue string
		wantValue  string
		wantErrMsg string
	}{
		{name: "plain value", paramValue: "42", wantValue: "42"},
		{name: "url-encoded slash", paramValue: "a%2Fb", wantValue: "a/b"},
		{name: "empty string", paramValue: "", wantErrMsg: "id cannot be empty"},
		{name: "url-encoded space only", paramValue: "%20", wantErrMsg: "id cannot be empty"},
		{name: "space in middle", paramValue: "4%202", wantErrMsg: "id cannot contain whitespace"},
		{name: "tab at end", paramValue: "42%09", wantErrMsg: "id cannot contain whitespace"},
	}

	for _, tt := range routerTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			router.Get("/{id}", func(_ http.ResponseWriter, r *http.Request) {
				value, err := GetAndValidateURLParam(r, "id")
				if tt.wantErrMsg != "" {
					require.Error(t, err)
					assert.Equal(t, tt.wantErrMsg, err.Error())
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.wantValue, value)
			})

			req, err := http.NewRequest(http.MethodGet, "/"+tt.paramValue, nil)
			require.NoError(t, err)
			router.ServeHTTP(httptest.NewRecorder(), req)
		})
	}

	// chi does not route these, so the route context is built by hand
	for _, paramValue := range []string{"1%2", "1%ZZ", "1%"} {
		t.Run("invalid encoding "+paramValue, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", paramValue)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			_, err := GetAndValidateURLParam(req, "id")
			require.Error(t, err)
			assert.Equal(t, "invalid URL encoding in id", err.Error())
		})
	}
}

func TestGetIntURLParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		paramValue string
		want       int
		wantErrMsg string
	}{
		{name: "integer", paramValue: "7", want: 7},
		{name: "negative integer", paramValue: "-1", want: -1},
		{name: "not an integer", paramValue: "seven", wantErrMsg: "id must be an integer"},
		{name: "float", paramValue: "7.5", wantErrMsg: "id must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			router.Get("/games/{id}", func(_ http.ResponseWriter, r *http.Request) {
				got, err := GetIntURLParam(r, "id")
				if tt.wantErrMsg != "" {
					require.Error(t, err)
					assert.Equal(t, tt.wantErrMsg, err.Error())
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})

			req := httptest.NewRequest(http.MethodGet, "/games/"+tt.paramValue, nil)
			router.ServeHTTP(httptest.NewRecorder(), req)
		})
	}
}

func TestGetOptionalQueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantString *string
		wantInt    *int
		wantErrMsg string
	}{
		{name: "absent", query: ""},
		{name: "empty value is absent", query: "?category_id="},
		{name: "integer", query: "?category_id=3", wantString: ptr("3"), wantInt: ptr(3)},
		{name: "surrounding spaces", query: "?category_id=%203%20", wantString: ptr(" 3 "), wantInt: ptr(3)},
		{
			name:       "not an integer",
			query:      "?category_id=abc",
			wantString: ptr("abc"),
			wantErrMsg: "invalid category_id parameter: must be an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/games"+tt.query, nil)

			assert.Equal(t, tt.wantString, GetOptionalQueryParam(req, "category_id"))

			got, err := GetOptionalIntQueryParam(req, "category_id")
			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantInt, got)
		})
	}
}

func TestWriteResponses(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteJSONResponse(rr, []int{1, 2}, http.StatusOK)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `[1,2]`, rr.Body.String())

	rr = httptest.NewRecorder()
	WriteErrorResponse(rr, "Game not found", http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Game not found"}`, rr.Body.String())
}

func ptr[T any](v T) *T {
	return &v
}
