package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deskmate-ai/deskmate/internal/crawl"
	"github.com/deskmate-ai/deskmate/internal/ingest"
	"github.com/deskmate-ai/deskmate/internal/provider/embed"
	"github.com/deskmate-ai/deskmate/internal/store/graph"
	"github.com/deskmate-ai/deskmate/internal/store/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator() *ingest.Coordinator {
	return ingest.New(vector.NewMemoryStore(), graph.NewMemoryStore(), embed.NewStub(), 512, 64)
}

func TestIngestHandler_Paste_Success(t *testing.T) {
	h := &IngestHandler{Coordinator: newTestCoordinator()}

	body, _ := json.Marshal(ingestPasteRequest{Title: "Password Reset", Text: "To reset your password, go to the account settings page and click reset."})
	req := httptest.NewRequest(http.MethodPost, "/ingest/paste", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Paste(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Chunks      int `json:"chunks"`
		VectorCount int `json:"vector_count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Chunks)
	assert.Equal(t, 1, resp.VectorCount)
}

func TestIngestHandler_Paste_EmptyTextRejected(t *testing.T) {
	h := &IngestHandler{Coordinator: newTestCoordinator()}

	body, _ := json.Marshal(ingestPasteRequest{Title: "t", Text: ""})
	req := httptest.NewRequest(http.MethodPost, "/ingest/paste", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Paste(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestHandler_Paste_MalformedJSON(t *testing.T) {
	h := &IngestHandler{Coordinator: newTestCoordinator()}

	req := httptest.NewRequest(http.MethodPost, "/ingest/paste", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	h.Paste(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestHandler_URL_DisabledByDefault(t *testing.T) {
	h := &IngestHandler{Coordinator: newTestCoordinator(), AllowURL: false}

	body, _ := json.Marshal(ingestURLRequest{URL: "http://example.com"})
	req := httptest.NewRequest(http.MethodPost, "/ingest/url", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.URL(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestHandler_URL_EmptyURLRejected(t *testing.T) {
	h := &IngestHandler{Coordinator: newTestCoordinator(), AllowURL: true, CrawlDefaults: crawl.Config{}}

	body, _ := json.Marshal(ingestURLRequest{URL: ""})
	req := httptest.NewRequest(http.MethodPost, "/ingest/url", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.URL(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestHandler_PDF_MissingFileField(t *testing.T) {
	h := &IngestHandler{Coordinator: newTestCoordinator()}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/ingest/pdf", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()

	h.PDF(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestHandler_PDF_UnreadableFileRejected(t *testing.T) {
	h := &IngestHandler{Coordinator: newTestCoordinator()}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "not-a-pdf.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("this is not a pdf"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/ingest/pdf", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()

	h.PDF(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
