package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/config"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/database"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiFixture struct {
	router    *gin.Engine
	uploadDir string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	uploadDir := t.TempDir()
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: 4},
		Upload:   config.UploadConfig{Dir: uploadDir},
		Auth: config.AuthConfig{
			PublicPaths: []string{"/api/auth/register", "/api/auth/login", "/error"},
		},
		App: config.AppSubConfig{PageSize: 20},
	}

	return &apiFixture{
		router:    SetupRouter(cfg, db),
		uploadDir: uploadDir,
	}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(body).Encode(payload))
	return f.do(t, method, path, token, body, "application/json")
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var env struct {
		Status  string                 `json:"status"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func (f *apiFixture) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	w := f.doJSON(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Budi",
		"email":    email,
		"password": "rahasia-123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.doJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "rahasia-123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, _ := parseBody(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func productMultipart(t *testing.T, fields map[string]string, imageName string, image []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if imageName != "" {
		part, err := mw.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

var productFields = map[string]string{
	"name":        "Kopi Gayo 250g",
	"category":    "Minuman",
	"price":       "55000",
	"stock":       "10",
	"description": "Biji kopi arabika",
}

// register -> login -> the returned token authenticates /api/users/me
func TestLoginTokenResolvesSameUser(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin(t, "budi@example.com")

	w := f.do(t, http.MethodGet, "/api/users/me", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	user, _ := parseBody(t, w)["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "budi@example.com", user["email"])
}

func TestGarbageTokenRejected(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/api/users/me", "garbage", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), util.MsgTokenInvalid)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin(t, "budi@example.com")

	w := f.do(t, http.MethodPost, "/api/auth/logout", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	// the token still decodes but was deleted from the store
	w = f.do(t, http.MethodGet, "/api/users/me", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), util.MsgTokenExpired)
}

func TestProductImageLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin(t, "budi@example.com")

	body, contentType := productMultipart(t, productFields, "kopi.jpg", []byte("image-bytes"))
	w := f.do(t, http.MethodPost, "/api/products", token, body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	product, _ := parseBody(t, w)["product"].(map[string]interface{})
	require.NotNil(t, product)

	imageURL, _ := product["image_url"].(string)
	require.True(t, strings.HasPrefix(imageURL, "/uploads/"), imageURL)
	stored := strings.TrimPrefix(imageURL, "/uploads/")

	_, err := os.Stat(filepath.Join(f.uploadDir, stored))
	require.NoError(t, err, "uploaded image must exist on disk")

	id := int(product["id"].(float64))
	w = f.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	_, err = os.Stat(filepath.Join(f.uploadDir, stored))
	assert.True(t, os.IsNotExist(err), "image must be deleted with the record")

	w = f.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), token, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnersAreIsolated(t *testing.T) {
	f := newAPIFixture(t)
	tokenA := f.registerAndLogin(t, "budi@example.com")
	tokenB := f.registerAndLogin(t, "siti@example.com")

	body, contentType := productMultipart(t, productFields, "", nil)
	w := f.do(t, http.MethodPost, "/api/products", tokenA, body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	product, _ := parseBody(t, w)["product"].(map[string]interface{})
	id := int(product["id"].(float64))

	// B guesses A's valid id: reads 404, update is a silent no-op
	w = f.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), tokenB, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	altered := map[string]string{}
	for k, v := range productFields {
		altered[k] = v
	}
	altered["name"] = "Dibajak"
	body, contentType = productMultipart(t, altered, "", nil)
	w = f.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", id), tokenB, body, contentType)
	assert.Equal(t, http.StatusOK, w.Code)

	// A still sees the original name
	w = f.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), tokenA, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	got, _ := parseBody(t, w)["product"].(map[string]interface{})
	assert.Equal(t, "Kopi Gayo 250g", got["name"])

	// B's listing stays empty
	w = f.do(t, http.MethodGet, "/api/products", tokenB, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list, _ := parseBody(t, w)["products"].([]interface{})
	assert.Empty(t, list)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAPIFixture(t)
	f.registerAndLogin(t, "budi@example.com")

	w := f.doJSON(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Budi Kedua",
		"email":    "budi@example.com",
		"password": "rahasia-123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), util.MsgEmailTaken)
}

func TestExportCSV(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin(t, "budi@example.com")

	body, contentType := productMultipart(t, productFields, "", nil)
	w := f.do(t, http.MethodPost, "/api/products", token, body, contentType)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/export/csv", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Kopi Gayo 250g")
}

func TestDeleteAccountRemovesEverything(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin(t, "budi@example.com")

	body, contentType := productMultipart(t, productFields, "kopi.jpg", []byte("img"))
	w := f.do(t, http.MethodPost, "/api/products", token, body, contentType)
	require.Equal(t, http.StatusOK, w.Code)

	product, _ := parseBody(t, w)["product"].(map[string]interface{})
	stored := strings.TrimPrefix(product["image_url"].(string), "/uploads/")

	w = f.do(t, http.MethodDelete, "/api/users/me", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	_, err := os.Stat(filepath.Join(f.uploadDir, stored))
	assert.True(t, os.IsNotExist(err))

	// tokens are revoked with the account
	w = f.do(t, http.MethodGet, "/api/users/me", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
