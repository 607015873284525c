package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "glam-admin/internal/domain/upload"
	xerrors "glam-admin/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUploader struct {
	names    []string
	bodies   []string
	existing int
	fail     map[string]bool
	err      error
	deleted  []string
}

func (f *fakeUploader) UploadBatch(_ context.Context, files []domain.File, existing int) ([]domain.Asset, error) {
	f.existing = existing
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Asset
	failed := 0
	for _, file := range files {
		b, _ := io.ReadAll(file.Body)
		f.names = append(f.names, file.Name)
		f.bodies = append(f.bodies, string(b))
		if f.fail[file.Name] {
			failed++
			continue
		}
		out = append(out, domain.Asset{URL: "https://media.test/" + file.Name, AssetID: "glam/" + file.Name})
	}
	if failed > 0 {
		return out, xerrors.UploadError("1 of 2 uploads failed", errors.New("boom"))
	}
	return out, nil
}

func (f *fakeUploader) DeleteAsset(_ context.Context, id string) {
	f.deleted = append(f.deleted, id)
}

type noopSessions struct{ cleared bool }

func (n *noopSessions) ClearToken(context.Context) error {
	n.cleared = true
	return nil
}

func router(u *fakeUploader) (*gin.Engine, *noopSessions) {
	gin.SetMode(gin.TestMode)
	s := &noopSessions{}
	h := NewUploadHandler(u, s, zap.NewNop())
	r := gin.New()
	r.POST("/uploads", h.Upload)
	r.POST("/uploads/delete", h.Delete)
	return r, s
}

func multipartBody(t *testing.T, existing string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"a.jpg", "b.jpg"} {
		content, ok := files[name]
		if !ok {
			continue
		}
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, _ = fw.Write([]byte(content))
	}
	if existing != "" {
		require.NoError(t, mw.WriteField("existing", existing))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

type envelope struct {
	OK   bool `json:"ok"`
	Data struct {
		Assets []domain.Asset `json:"assets"`
	} `json:"data"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func send(t *testing.T, r http.Handler, body io.Reader, contentType string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestUpload_Batch(t *testing.T) {
	u := &fakeUploader{}
	r, _ := router(u)

	body, ct := multipartBody(t, "3", map[string]string{"a.jpg": "AAA", "b.jpg": "BBB"})
	code, env := send(t, r, body, ct)

	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, u.names)
	assert.Equal(t, []string{"AAA", "BBB"}, u.bodies)
	assert.Equal(t, 3, u.existing)
	require.Len(t, env.Data.Assets, 2)
	assert.Equal(t, "glam/a.jpg", env.Data.Assets[0].AssetID)
}

func TestUpload_PartialFailureKeepsSuccesses(t *testing.T) {
	u := &fakeUploader{fail: map[string]bool{"b.jpg": true}}
	r, _ := router(u)

	body, ct := multipartBody(t, "", map[string]string{"a.jpg": "AAA", "b.jpg": "BBB"})
	code, env := send(t, r, body, ct)

	assert.Equal(t, http.StatusBadGateway, code)
	assert.False(t, env.OK)
	assert.Equal(t, "1 of 2 uploads failed", env.Message)
	require.Len(t, env.Data.Assets, 1)
	assert.Equal(t, "https://media.test/a.jpg", env.Data.Assets[0].URL)
}

func TestUpload_NoFiles(t *testing.T) {
	r, _ := router(&fakeUploader{})
	body, ct := multipartBody(t, "1", nil)
	code, env := send(t, r, body, ct)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.OK)
}

func TestUpload_NotMultipart(t *testing.T) {
	u := &fakeUploader{}
	r, _ := router(u)
	code, env := send(t, r, bytes.NewBufferString(`{"file":"a.jpg"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.OK)
	assert.Empty(t, u.names)
}

func TestUpload_SessionRejected(t *testing.T) {
	u := &fakeUploader{err: xerrors.AuthError(http.StatusUnauthorized, "", "expired")}
	r, sessions := router(u)

	body, ct := multipartBody(t, "", map[string]string{"a.jpg": "AAA"})
	code, env := send(t, r, body, ct)
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "AUTH_REQUIRED", env.Code)
	assert.True(t, sessions.cleared)
}

func TestDelete_BestEffort(t *testing.T) {
	u := &fakeUploader{}
	r, _ := router(u)

	req := httptest.NewRequest(http.MethodPost, "/uploads/delete", bytes.NewBufferString(`{"assetId":"glam/a"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"glam/a"}, u.deleted)

	req = httptest.NewRequest(http.MethodPost, "/uploads/delete", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
