package helpers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPageBounds(t *testing.T) {
	start, end, ok := PageBounds(1, 10, 19)
	assert.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end, ok = PageBounds(2, 10, 19)
	assert.True(t, ok)
	assert.Equal(t, 10, start)
	assert.Equal(t, 19, end)

	_, _, ok = PageBounds(3, 10, 19)
	assert.False(t, ok)

	_, _, ok = PageBounds(0, 10, 19)
	assert.False(t, ok)

	_, _, ok = PageBounds(1, 10, 0)
	assert.False(t, ok)

	_, _, ok = PageBounds(1_000_000_000_000_000_000, 10, 12)
	assert.False(t, ok, "huge page must not wrap around to page 1")

	start, end, ok = PageBounds(2, 10, 20)
	assert.True(t, ok)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)
	_, _, ok = PageBounds(3, 10, 20)
	assert.False(t, ok)
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"", "0", "-1", "abc", "1.5"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, bad)
	}
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Park Square Live Music & Coffee", SanitizeText("  Park Square Live Music & Coffee "))
	assert.Equal(t, "hello", SanitizeText("<script>alert(1)</script><b>hello</b>"))
	assert.Equal(t, "Q", SanitizeText("&lt;script&gt;alert(1)&lt;/script&gt;Q"))
	assert.Equal(t, "bold", SanitizeText("&amp;lt;b&amp;gt;bold&amp;lt;/b&amp;gt;"))
	assert.Equal(t, "1 < 2 & 3 > 2", SanitizeText("1 < 2 & 3 > 2"))
	assert.Equal(t, `Tom's "Bar"`, SanitizeText(`Tom&#39;s &quot;Bar&quot;`))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%hop%", LikePattern("Hop"))
	assert.Equal(t, `%100\%\_x%`, LikePattern("100%_x"))
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithError(c, http.StatusUnprocessableEntity, "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.True(t, c.IsAborted())

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, 422, body.Error)
	assert.Equal(t, "Unprocessable", body.Message)
}

func TestFlashRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	SetFlash(c, "Venue The Musical Hop was successfully listed!")

	cookie := w.Result().Cookies()[0]

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(cookie)

	assert.Equal(t, "Venue The Musical Hop was successfully listed!", PopFlash(c2))
	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].MaxAge < 0)
}

func newUploadContext(t *testing.T, filename string, content []byte) (*gin.Context, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())

	fh, err := c.FormFile("image")
	require.NoError(t, err)
	return c, fh
}

func TestUploadFile(t *testing.T) {
	dir := t.TempDir()
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	c, fh := newUploadContext(t, "Logo.PNG", png)

	link, err := UploadFile(c, fh, "venues", ImageUploadConfig(dir))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "/uploads/venues/"))
	assert.True(t, strings.HasSuffix(link, ".png"))

	stored := filepath.Join(dir, "venues", filepath.Base(link))
	_, err = os.Stat(stored)
	require.NoError(t, err)

	require.NoError(t, DeleteUpload(link, dir))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, DeleteUpload("https://example.com/a.png", dir))
}

func TestUploadFileRejectsWrongType(t *testing.T) {
	c, fh := newUploadContext(t, "notes.png", []byte("just some plain text"))

	_, err := UploadFile(c, fh, "venues", ImageUploadConfig(t.TempDir()))
	assert.Error(t, err)
}
