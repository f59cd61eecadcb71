package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/listing"
)

const (
	maxBodyBytes      = 1 << 20
	maxPageSize       = 100
	idempotencyHeader = "Idempotency-Key"
)

// readBody reads a bounded request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.NewMaxBodySizeExceededError(maxBodyBytes)
		}
		return nil, errs.NewBadRequestError("failed to read request body")
	}
	return body, nil
}

func decodeBody(body []byte, payloadName string, v any) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return errs.Malformed(payloadName)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errs.NewMalformedPayloadError(payloadName, err)
	}
	return nil
}

// decodeJSON reads and decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, payloadName string, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	return decodeBody(body, payloadName, v)
}

// submissionKey identifies a form submission. Clients may name it with the
// Idempotency-Key header, otherwise identical bodies share a key.
func submissionKey(r *http.Request, kind string, body []byte) string {
	if key := strings.TrimSpace(r.Header.Get(idempotencyHeader)); key != "" {
		return kind + ":" + key
	}
	sum := sha256.Sum256(body)
	return kind + ":" + hex.EncodeToString(sum[:])
}

func urlParam(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(chi.URLParam(r, name))
	if v == "" {
		return "", errs.NewBadRequestError("missing " + name)
	}
	return v, nil
}

// pageQuery is the search, page and pageSize query of a list request
type pageQuery struct {
	search string
	page   int
	size   int
}

func parsePageQuery(r *http.Request) pageQuery {
	q := r.URL.Query()
	return pageQuery{
		search: strings.TrimSpace(q.Get("search")),
		page:   positiveInt(q.Get("page"), 1),
		size:   min(positiveInt(q.Get("pageSize"), listing.DefaultPageSize), maxPageSize),
	}
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// paginate clamps the requested page into range and slices items.
func paginate[T any](items []T, q pageQuery) listResponse[T] {
	totalPages := (len(items) + q.size - 1) / q.size
	page := listing.ClampPage(q.page, totalPages)
	return newListResponse(listing.Paginate(items, page, q.size))
}
