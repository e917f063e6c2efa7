package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/benthecarman/macro-factor-go/internal/errors"
	"github.com/benthecarman/macro-factor-go/internal/ratelimit"
)

const (
	defaultTimeout = 30 * time.Second
	defaultBurst   = 5
)

// TokenSource supplies a fresh bearer token for each outbound request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the document store gateway: fetch/list/patch operations against
// path-addressed documents under one Firestore project.
type Client struct {
	http      *http.Client
	baseURL   string
	projectID string
	tokens    TokenSource
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
}

// NewClient creates a gateway against the given API base and project.
func NewClient(baseURL, projectID string, rps float64, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   baseURL,
		projectID: projectID,
		tokens:    tokens,
		limiter:   ratelimit.New(rps, defaultBurst),
		logger:    logger,
	}
}

// documentsBase returns the root of the project's document tree.
func (c *Client) documentsBase() string {
	return fmt.Sprintf("%s/projects/%s/databases/(default)/documents", c.baseURL, c.projectID)
}

// Get fetches a single document by path. A 404 surfaces as errors.ErrNotFound;
// range-scanning callers recover it, direct callers propagate it.
func (c *Client) Get(ctx context.Context, path string) (*Document, error) {
	body, err := c.do(ctx, http.MethodGet, c.documentsBase()+"/"+path, nil, nil, "GET "+path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.CodeDecode, "decode document %s", path)
	}
	return &doc, nil
}

// List fetches a single page of documents from a collection. The caller
// paginates by passing the returned next-page token back in.
func (c *Client) List(ctx context.Context, collectionPath string, pageSize int, pageToken string) ([]Document, string, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	body, err := c.do(ctx, http.MethodGet, c.documentsBase()+"/"+collectionPath, query, nil, "LIST "+collectionPath)
	if err != nil {
		return nil, "", err
	}

	var resp struct {
		Documents     []Document `json:"documents"`
		NextPageToken string     `json:"nextPageToken"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", errors.Wrapf(err, errors.CodeDecode, "decode list %s", collectionPath)
	}
	return resp.Documents, resp.NextPageToken, nil
}

// ListCollectionIDs returns the IDs of all sub-collections under a document,
// following next-page tokens until exhausted. An empty parentPath lists the
// root collections.
func (c *Client) ListCollectionIDs(ctx context.Context, parentPath string) ([]string, error) {
	parent := c.documentsBase()
	if parentPath != "" {
		parent += "/" + parentPath
	}

	var all []string
	pageToken := ""
	for {
		reqBody := map[string]any{}
		if pageToken != "" {
			reqBody["pageToken"] = pageToken
		}

		body, err := c.do(ctx, http.MethodPost, parent+":listCollectionIds", nil, reqBody, "listCollectionIds")
		if err != nil {
			return nil, err
		}

		var resp struct {
			CollectionIDs []string `json:"collectionIds"`
			NextPageToken string   `json:"nextPageToken"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, errors.Wrap(err, errors.CodeDecode, "decode listCollectionIds")
		}

		all = append(all, resp.CollectionIDs...)
		if resp.NextPageToken == "" {
			return all, nil
		}
		pageToken = resp.NextPageToken
	}
}

// RunQuery executes a structured query under the given parent document and
// returns the matched documents.
func (c *Client) RunQuery(ctx context.Context, parentPath string, structuredQuery map[string]any) ([]Document, error) {
	parent := c.documentsBase()
	if parentPath != "" {
		parent += "/" + parentPath
	}

	body, err := c.do(ctx, http.MethodPost, parent+":runQuery", nil, map[string]any{
		"structuredQuery": structuredQuery,
	}, "runQuery")
	if err != nil {
		return nil, err
	}

	var results []struct {
		Document *Document `json:"document"`
		ReadTime string    `json:"readTime"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, errors.Wrap(err, errors.CodeDecode, "decode runQuery")
	}

	var docs []Document
	for _, r := range results {
		if r.Document != nil {
			docs = append(docs, *r.Document)
		}
	}
	return docs, nil
}

// Patch updates specific fields in a document, creating it if absent. Only
// the field paths named in the mask are affected: fields in the body but not
// the mask are ignored by the store, and fields in the mask but absent from
// the body are deleted from the document. Mask entries with a leading digit
// are backtick-quoted to satisfy the field-path grammar.
func (c *Client) Patch(ctx context.Context, path string, fields map[string]Value, maskPaths []string) (*Document, error) {
	query := url.Values{}
	for _, fp := range maskPaths {
		query.Add("updateMask.fieldPaths", QuoteFieldPath(fp))
	}

	if fields == nil {
		fields = map[string]Value{}
	}
	body, err := c.do(ctx, http.MethodPatch, c.documentsBase()+"/"+path, query, map[string]any{
		"fields": fields,
	}, "PATCH "+path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.CodeDecode, "decode patched document %s", path)
	}
	return &doc, nil
}

// QuoteFieldPath backtick-quotes a field path whose first segment starts with
// a digit. The wire protocol's path grammar treats a leading digit as a parse
// error, which affects every mask entry derived from a timestamp entry ID or
// an MMDD code.
func QuoteFieldPath(fp string) string {
	if fp == "" {
		return fp
	}
	if fp[0] >= '0' && fp[0] <= '9' {
		return "`" + fp + "`"
	}
	return fp
}

// do executes one HTTP exchange: rate limit, bearer token, request, and
// status handling. Non-2xx responses become domain errors carrying the
// upstream status and body text. No retries are attempted.
func (c *Client) do(ctx context.Context, method, fullURL string, query url.Values, reqBody any, label string) ([]byte, error) {
	u, err := url.Parse(fullURL)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInternal, "parse url %s", fullURL)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeInternal, "encode request body for %s", label)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("firestore request", "method", method, "op", label)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NotFoundf("%s: document not found", label)
	default:
		return nil, errors.Transport(label+" failed", resp.StatusCode, string(body))
	}
}
