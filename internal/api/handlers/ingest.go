// Package handlers implements the HTTP surface of spec.md §6.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/deskmate-ai/deskmate/internal/api"
	"github.com/deskmate-ai/deskmate/internal/crawl"
	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/ingest"
	"github.com/deskmate-ai/deskmate/internal/pdftext"
)

const maxIngestBytes = 5 * 1024 * 1024

// IngestHandler serves /ingest/paste, /ingest/pdf, /ingest/url.
type IngestHandler struct {
	Coordinator   *ingest.Coordinator
	AllowURL      bool
	CrawlDefaults crawl.Config
}

type ingestPasteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type ingestURLRequest struct {
	URL      string `json:"url"`
	MaxDepth *int   `json:"max_depth"`
	MaxPages *int   `json:"max_pages"`
}

type ingestResponse struct {
	Chunks      int   `json:"chunks"`
	Entities    int   `json:"entities"`
	VectorCount int   `json:"vector_count"`
	MS          int64 `json:"ms"`
	Pages       int   `json:"pages,omitempty"`
}

// Paste handles POST /ingest/paste: {title?, text} -> {chunks, entities, vector_count, ms}.
func (h *IngestHandler) Paste(w http.ResponseWriter, r *http.Request) {
	var req ingestPasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, domain.NewBadInputWithCause("malformed JSON body", err))
		return
	}
	if req.Text == "" {
		api.HandleError(w, domain.NewBadInput("text must not be empty"))
		return
	}

	result, err := h.Coordinator.IngestText(r.Context(), req.Title, req.Text)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, toIngestResponse(result))
}

// PDF handles POST /ingest/pdf: a multipart file -> the paste response plus pages.
func (h *IngestHandler) PDF(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		api.HandleError(w, domain.NewBadInputWithCause("missing multipart file field", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxIngestBytes+1))
	if err != nil {
		api.HandleError(w, domain.NewBadInputWithCause("failed to read uploaded file", err))
		return
	}
	if len(data) > maxIngestBytes {
		api.Error(w, http.StatusRequestEntityTooLarge, "uploaded PDF exceeds the size limit")
		return
	}

	text, pages, err := pdftext.Extract(data)
	if err != nil {
		api.HandleError(w, domain.NewBadInputWithCause("unreadable PDF", err))
		return
	}

	result, err := h.Coordinator.IngestText(r.Context(), header.Filename, text)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	result.Pages = pages

	api.Success(w, http.StatusOK, toIngestResponse(result))
}

// URL handles POST /ingest/url: {url, max_depth?, max_pages?} -> the paste
// response plus pages, one crawled page fed through ingest_text per page.
func (h *IngestHandler) URL(w http.ResponseWriter, r *http.Request) {
	if !h.AllowURL {
		api.HandleError(w, domain.NewBadInput("URL ingestion is disabled"))
		return
	}

	var req ingestURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, domain.NewBadInputWithCause("malformed JSON body", err))
		return
	}
	if req.URL == "" {
		api.HandleError(w, domain.NewBadInput("url must not be empty"))
		return
	}

	cfg := h.CrawlDefaults
	if req.MaxDepth != nil {
		cfg.MaxDepth = *req.MaxDepth
	}
	if req.MaxPages != nil {
		cfg.MaxPages = *req.MaxPages
	}

	crawler, err := crawl.New(req.URL, cfg)
	if err != nil {
		api.HandleError(w, domain.NewBadInputWithCause("invalid url", err))
		return
	}

	pages, err := crawler.Crawl(r.Context(), req.URL)
	if err != nil {
		api.HandleError(w, domain.NewBadInputWithCause("crawl failed", err))
		return
	}

	var total domain.IngestResult
	total.Pages = len(pages)
	for _, page := range pages {
		result, err := h.Coordinator.IngestText(r.Context(), page.URL, page.Text)
		if err != nil {
			api.HandleError(w, err)
			return
		}
		total.Chunks += result.Chunks
		total.Entities += result.Entities
		total.VectorCount += result.VectorCount
		total.MS += result.MS
	}

	api.Success(w, http.StatusOK, toIngestResponse(total))
}

func toIngestResponse(r domain.IngestResult) ingestResponse {
	return ingestResponse{
		Chunks:      r.Chunks,
		Entities:    r.Entities,
		VectorCount: r.VectorCount,
		MS:          r.MS,
		Pages:       r.Pages,
	}
}
