package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-manager/internal/core/importer/structured"
	"recipe-manager/internal/core/importer/vision"
	"recipe-manager/internal/pkg/common"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeURLImporter struct {
	lastURL   string
	candidate *common.RecipeCandidate
	err       error
}

func (f *fakeURLImporter) FromURL(ctx context.Context, url string) (*common.RecipeCandidate, error) {
	f.lastURL = url
	if f.err != nil {
		return nil, f.err
	}
	return f.candidate, nil
}

type fakeScreenshotImporter struct {
	lastImages []vision.ImageInput
	candidate  *common.RecipeCandidate
	err        error
}

func (f *fakeScreenshotImporter) Extract(ctx context.Context, images []vision.ImageInput) (*common.RecipeCandidate, error) {
	f.lastImages = images
	if f.err != nil {
		return nil, f.err
	}
	return f.candidate, nil
}

func setupRouter(urlImp URLImporter, shotImp ScreenshotImporter) *gin.Engine {
	h := NewHandler(urlImp, shotImp)
	r := gin.New()
	r.POST("/import/url", h.FromURL)
	r.POST("/import/screenshot", h.FromScreenshots)
	return r
}

func postJSON(r *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestFromURLSuccess(t *testing.T) {
	urlImp := &fakeURLImporter{candidate: &common.RecipeCandidate{
		Title: "Lemon Tart",
		Ingredients: []common.Ingredient{
			{Amount: "2", Unit: "cups", Name: "flour"},
		},
		Steps: []common.Step{
			{Order: 1, Instruction: "Mix"},
		},
	}}
	r := setupRouter(urlImp, &fakeScreenshotImporter{})

	w := postJSON(r, "/import/url", `{"url": "https://example.com/tart"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.com/tart", urlImp.lastURL)

	out := decodeResult(t, w)
	assert.Equal(t, true, out["success"])
	recipe := out["recipe"].(map[string]interface{})
	assert.Equal(t, "Lemon Tart", recipe["title"])
}

func TestFromURLFetchErrorReturnsFailureResult(t *testing.T) {
	urlImp := &fakeURLImporter{err: &structured.FetchError{
		URL:        "https://example.com/missing",
		StatusCode: 404,
	}}
	r := setupRouter(urlImp, &fakeScreenshotImporter{})

	w := postJSON(r, "/import/url", `{"url": "https://example.com/missing"}`)

	// 匯入失敗是預期結果,走 200 + success:false
	assert.Equal(t, http.StatusOK, w.Code)
	out := decodeResult(t, w)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "404")
	assert.Equal(t, common.ErrCodeFetchError, out["code"])
	assert.NotContains(t, out, "recipe")
}

func TestFromURLRejectsBadInput(t *testing.T) {
	r := setupRouter(&fakeURLImporter{}, &fakeScreenshotImporter{})

	tests := []struct {
		name string
		body string
	}{
		{"missing url", `{}`},
		{"not json", `url=x`},
		{"unsupported scheme", `{"url": "ftp://example.com/a"}`},
		{"no scheme", `{"url": "example.com/a"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/import/url", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for name, data := range files {
		part, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestFromScreenshotsSuccess(t *testing.T) {
	shotImp := &fakeScreenshotImporter{candidate: &common.RecipeCandidate{
		Title:       "Pancakes",
		Ingredients: []common.Ingredient{},
		Steps:       []common.Step{},
	}}
	r := setupRouter(&fakeURLImporter{}, shotImp)

	// 真實的 PNG 標頭,讓內容嗅探得出 image/png
	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	body, contentType := multipartBody(t, map[string][]byte{"shot.png": pngHeader})

	req := httptest.NewRequest(http.MethodPost, "/import/screenshot", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	out := decodeResult(t, w)
	assert.Equal(t, true, out["success"])

	require.Len(t, shotImp.lastImages, 1)
	assert.Equal(t, "shot.png", shotImp.lastImages[0].Filename)
	assert.Equal(t, "image/png", shotImp.lastImages[0].MediaType)
	assert.Equal(t, pngHeader, shotImp.lastImages[0].Data)
}

func TestFromScreenshotsUnsupportedFormat(t *testing.T) {
	shotImp := &fakeScreenshotImporter{err: &vision.UnsupportedFormatError{
		Filename:  "scan.bmp",
		MediaType: "image/bmp",
	}}
	r := setupRouter(&fakeURLImporter{}, shotImp)

	body, contentType := multipartBody(t, map[string][]byte{"scan.bmp": {'B', 'M', 1, 2}})
	req := httptest.NewRequest(http.MethodPost, "/import/screenshot", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	out := decodeResult(t, w)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "scan.bmp")
	assert.Equal(t, common.ErrCodeUnsupportedFormat, out["code"])
}

func TestFromScreenshotsRequiresImages(t *testing.T) {
	r := setupRouter(&fakeURLImporter{}, &fakeScreenshotImporter{})

	body, contentType := multipartBody(t, map[string][]byte{})
	req := httptest.NewRequest(http.MethodPost, "/import/screenshot", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFromScreenshotsRejectsTooManyImages(t *testing.T) {
	shotImp := &fakeScreenshotImporter{}
	r := setupRouter(&fakeURLImporter{}, shotImp)

	files := map[string][]byte{}
	for i := 0; i < maxScreenshotImages+1; i++ {
		files["shot"+string(rune('a'+i))+".png"] = []byte{0x89, 'P', 'N', 'G'}
	}
	body, contentType := multipartBody(t, files)

	req := httptest.NewRequest(http.MethodPost, "/import/screenshot", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, shotImp.lastImages)
}

func TestImportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantCode string
	}{
		{
			"fetch error with status",
			&structured.FetchError{URL: "https://x", StatusCode: 500},
			"Could not fetch the page (HTTP 500)",
			common.ErrCodeFetchError,
		},
		{
			"fetch error without status",
			&structured.FetchError{URL: "https://x"},
			"Could not fetch the page",
			common.ErrCodeFetchError,
		},
		{
			"unsupported format",
			&vision.UnsupportedFormatError{Filename: "a.tiff", MediaType: "image/tiff"},
			"unsupported format: a.tiff. Use JPEG, PNG, WebP, or GIF.",
			common.ErrCodeUnsupportedFormat,
		},
		{
			"extraction error",
			&vision.ExtractionError{},
			"could not extract recipe from image(s)",
			common.ErrCodeExtractionError,
		},
		{
			"unknown error",
			assert.AnError,
			"Import failed",
			common.ErrCodeExtractionError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, code := importError(tt.err)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
