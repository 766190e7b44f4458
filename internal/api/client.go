// Package api implements the client for the university RAG HTTP API: health
// checking, connection state, and the query/collection/document operations.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/vinhuni-its/ragbot/internal/configuration"
	"github.com/vinhuni-its/ragbot/internal/debug"
)

const (
	endpointHealth         = "/health"
	endpointQueryRAG       = "/query/rag"
	endpointRetrieve       = "/query/retrieve"
	endpointCollections    = "/manage/collections"
	endpointRawCollections = "/query/collections/raw"
	endpointUpload         = "/documents/upload"
	endpointDocuments      = "/documents"

	collectionsCacheKey    = "collections"
	rawCollectionsCacheKey = "collections/raw"
	cacheTTL               = 5 * time.Minute
)

// Client is the single owner of the active base URL, API key and connection
// state. All mutations go through its setters, which keep in-memory state,
// persisted configuration and the transport in lockstep.
type Client struct {
	mu          sync.RWMutex
	baseURL     string
	apiKey      string
	isConnected bool

	// checking latches while a health check is in flight so re-entrant
	// checks are suppressed rather than queued.
	checking atomic.Bool

	httpClient *http.Client
	config     *configuration.Config
	cache      *gocache.Cache
	log        *slog.Logger

	onConnectivity func(connected bool)
}

// New creates a client from the persisted configuration.
func New(config *configuration.Config) *Client {
	c := &Client{
		baseURL: configuration.NormalizeURL(config.APIURL),
		apiKey:  config.APIKey,
		config:  config,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		log:     debug.GetLogger(),
	}
	c.httpClient = &http.Client{
		Timeout: time.Duration(config.RequestTimeout) * time.Second,
		Transport: &connectivityInterceptor{
			client: c,
			next:   http.DefaultTransport,
		},
	}
	return c
}

// connectivityInterceptor observes transport-level failures and
// service-unavailable responses, re-verifying connectivity before the
// original error reaches the caller. It never retries the original call.
type connectivityInterceptor struct {
	client *Client
	next   http.RoundTripper
}

func (i *connectivityInterceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := i.next.RoundTrip(req)
	if strings.HasSuffix(req.URL.Path, endpointHealth) {
		return resp, err
	}
	if err != nil || (resp != nil && resp.StatusCode == http.StatusServiceUnavailable) {
		i.client.CheckConnection(context.Background())
	}
	return resp, err
}

// SetOnConnectivityChange registers a callback fired after every health
// check with its outcome. Used by UIs for the status indicator.
func (c *Client) SetOnConnectivityChange(fn func(connected bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onConnectivity = fn
}

// BaseURL returns the active API endpoint.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// IsConnected returns the last-known health-check result.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isConnected
}

// CheckConnection issues a health request against the active base URL.
// Re-entrant calls while one is already in flight are suppressed and return
// false immediately.
func (c *Client) CheckConnection(ctx context.Context) bool {
	if !c.checking.CompareAndSwap(false, true) {
		return false
	}
	defer c.checking.Store(false)

	ok := c.checkHealth(ctx)
	c.mu.Lock()
	c.isConnected = ok
	fn := c.onConnectivity
	c.mu.Unlock()

	if !ok {
		c.log.Warn("health check failed", "base_url", c.BaseURL())
	}
	if fn != nil {
		fn(ok)
	}
	return ok
}

func (c *Client) checkHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+endpointHealth, nil)
	if err != nil {
		return false
	}
	c.setHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}
	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false
	}
	return health.Status == "ok"
}

// UpdateAPIURL normalizes the URL to guarantee the fixed path suffix,
// persists it, updates the transport target, and triggers an immediate
// health check. Idempotent for an already-normalized URL.
func (c *Client) UpdateAPIURL(ctx context.Context, url string) error {
	normalized := configuration.NormalizeURL(url)
	c.mu.Lock()
	c.baseURL = normalized
	c.mu.Unlock()
	if err := c.config.SetAPIURL(normalized); err != nil {
		return errors.Wrap(err, "persisting api url")
	}
	c.CheckConnection(ctx)
	return nil
}

// UpdateAPIKey persists the credential and updates the bearer header used on
// subsequent calls. It does not trigger a health check.
func (c *Client) UpdateAPIKey(key string) error {
	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()
	if err := c.config.SetAPIKey(key); err != nil {
		return errors.Wrap(err, "persisting api key")
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	c.mu.RLock()
	key := c.apiKey
	c.mu.RUnlock()
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
}

// do executes one JSON request. A nil out skips response decoding.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshaling request")
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, reader)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return classifyStatus(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}

// QueryRAG sends one retrieval-augmented query.
func (c *Client) QueryRAG(ctx context.Context, request *QueryRequest) (*QueryResponse, error) {
	response := &QueryResponse{}
	if err := c.do(ctx, http.MethodPost, endpointQueryRAG, request, response); err != nil {
		c.log.Error("query failed", "error", err)
		return nil, err
	}
	return response, nil
}

// RetrieveDocuments performs raw retrieval without generation.
func (c *Client) RetrieveDocuments(ctx context.Context, request *RetrieveRequest) ([]RetrievedDocument, error) {
	var documents []RetrievedDocument
	if err := c.do(ctx, http.MethodPost, endpointRetrieve, request, &documents); err != nil {
		c.log.Error("retrieve failed", "error", err)
		return nil, err
	}
	return documents, nil
}

// GetCollections lists managed collections, served from the session cache
// when fresh.
func (c *Client) GetCollections(ctx context.Context) ([]Collection, error) {
	if cached, ok := c.cache.Get(collectionsCacheKey); ok {
		return cached.([]Collection), nil
	}
	var collections []Collection
	if err := c.do(ctx, http.MethodGet, endpointCollections, nil, &collections); err != nil {
		c.log.Error("listing collections failed", "error", err)
		return nil, err
	}
	c.cache.Set(collectionsCacheKey, collections, gocache.DefaultExpiration)
	return collections, nil
}

// GetRawCollections lists collections straight from the vector store.
func (c *Client) GetRawCollections(ctx context.Context) ([]Collection, error) {
	if cached, ok := c.cache.Get(rawCollectionsCacheKey); ok {
		return cached.([]Collection), nil
	}
	var collections []Collection
	if err := c.do(ctx, http.MethodGet, endpointRawCollections, nil, &collections); err != nil {
		c.log.Error("listing raw collections failed", "error", err)
		return nil, err
	}
	c.cache.Set(rawCollectionsCacheKey, collections, gocache.DefaultExpiration)
	return collections, nil
}

// InvalidateCollections drops the cached collection listings. Called after
// any mutation of the document set.
func (c *Client) InvalidateCollections() {
	c.cache.Delete(collectionsCacheKey)
	c.cache.Delete(rawCollectionsCacheKey)
}

// UploadDocument uploads a document for indexing via multipart form.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader, opts UploadOptions) (*UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrap(err, "creating form file")
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, errors.Wrap(err, "copying file content")
	}
	if opts.CollectionName != "" {
		writer.WriteField("collection_name", opts.CollectionName)
	}
	if opts.ChunkSize > 0 {
		writer.WriteField("chunk_size", fmt.Sprintf("%d", opts.ChunkSize))
	}
	if opts.ChunkOverlap > 0 {
		writer.WriteField("chunk_overlap", fmt.Sprintf("%d", opts.ChunkOverlap))
	}
	if len(opts.Metadata) > 0 {
		encoded, err := json.Marshal(opts.Metadata)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling metadata")
		}
		writer.WriteField("metadata", string(encoded))
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "closing multipart writer")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+endpointUpload, &buf)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, classifyStatus(resp.StatusCode, raw)
	}
	result := &UploadResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, errors.Wrap(err, "decoding response")
	}
	c.InvalidateCollections()
	return result, nil
}

// DeleteDocument removes an indexed document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, endpointDocuments+"/"+id, nil, nil); err != nil {
		c.log.Error("deleting document failed", "id", id, "error", err)
		return err
	}
	c.InvalidateCollections()
	return nil
}

// DeleteCollection removes a whole collection.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, endpointCollections+"/"+name, nil, nil); err != nil {
		c.log.Error("deleting collection failed", "name", name, "error", err)
		return err
	}
	c.InvalidateCollections()
	return nil
}
