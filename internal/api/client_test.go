package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinhuni-its/ragbot/internal/configuration"
)

func testConfig(t *testing.T, url string) *configuration.Config {
	t.Helper()
	config, err := configuration.Parse(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	config.APIURL = url
	config.RequestTimeout = 5
	return config
}

func TestCheckConnectionOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	var notified atomic.Bool
	client.SetOnConnectivityChange(func(connected bool) { notified.Store(connected) })

	assert.True(t, client.CheckConnection(context.Background()))
	assert.True(t, client.IsConnected())
	assert.True(t, notified.Load())
}

func TestCheckConnectionBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "degraded"})
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	assert.False(t, client.CheckConnection(context.Background()))
	assert.False(t, client.IsConnected())
}

func TestCheckConnectionReentrantSuppressed(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	first := make(chan bool)
	go func() { first <- client.CheckConnection(context.Background()) }()

	<-entered
	// A second check while the first is in flight returns false immediately,
	// without queuing another health request.
	assert.False(t, client.CheckConnection(context.Background()))

	close(release)
	assert.True(t, <-first)
}

func TestUpdateAPIURLNormalizesAndIsIdempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "config.json")
	config, err := configuration.Parse(path)
	require.NoError(t, err)
	config.RequestTimeout = 5
	client := New(config)

	require.NoError(t, client.UpdateAPIURL(context.Background(), server.URL))
	assert.Equal(t, server.URL+"/api", client.BaseURL())
	assert.True(t, client.IsConnected())

	// Submitting the already-normalized URL changes nothing.
	require.NoError(t, client.UpdateAPIURL(context.Background(), server.URL+"/api"))
	assert.Equal(t, server.URL+"/api", client.BaseURL())

	persisted, err := configuration.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/api", persisted.APIURL)
	assert.True(t, strings.HasSuffix(persisted.APIURL, configuration.APIPathSuffix))
}

func TestUpdateAPIKeySetsBearerHeader(t *testing.T) {
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]Collection{})
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	require.NoError(t, client.UpdateAPIKey("secret-token"))

	_, err := client.GetCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth.Load())
}

func TestServiceUnavailableTriggersHealthCheck(t *testing.T) {
	var healthHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/health") {
			healthHits.Add(1)
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	_, err := client.QueryRAG(context.Background(), &QueryRequest{Query: "hi"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindServer))
	assert.Equal(t, int32(1), healthHits.Load())
}

func TestTransportErrorClassifiedAsConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Closed server: every call fails at the transport level.

	client := New(testConfig(t, server.URL+"/api"))
	_, err := client.QueryRAG(context.Background(), &QueryRequest{Query: "hi"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConnection))
}

func TestDetailMessageOverridesGeneric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/health") {
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "query must not be empty"})
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	_, err := client.QueryRAG(context.Background(), &QueryRequest{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, "query must not be empty", err.Error())
}

func TestDetailValidationListShape(t *testing.T) {
	body := []byte(`{"detail": [{"msg": "field required", "loc": ["query"]}]}`)
	apiErr := classifyStatus(http.StatusUnprocessableEntity, body)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "field required", apiErr.Message)
}

func TestStatusTaxonomy(t *testing.T) {
	cases := map[int]Kind{
		http.StatusUnauthorized:        KindUnauthorized,
		http.StatusNotFound:            KindNotFound,
		http.StatusUnprocessableEntity: KindValidation,
		http.StatusInternalServerError: KindServer,
		http.StatusServiceUnavailable:  KindServer,
		http.StatusBadRequest:          KindUnknown,
	}
	for status, kind := range cases {
		assert.Equal(t, kind, classifyStatus(status, nil).Kind, "status %d", status)
	}
}

func TestGetCollectionsCached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode([]Collection{{Name: "quy-che", DocumentCount: 12}})
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	first, err := client.GetCollections(context.Background())
	require.NoError(t, err)
	second, err := client.GetCollections(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	client.InvalidateCollections()
	_, err = client.GetCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestQueryRAGDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "học phí", request.Query)
		assert.Equal(t, 15, request.TopK)
		json.NewEncoder(w).Encode(QueryResponse{
			Answer:     "Câu trả lời",
			Sources:    []Source{{Text: "trích dẫn", Metadata: SourceMetadata{OriginalFilename: "quy-che.pdf"}}},
			IsFallback: true,
		})
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	response, err := client.QueryRAG(context.Background(), &QueryRequest{Query: "học phí", TopK: 15})
	require.NoError(t, err)
	assert.Equal(t, "Câu trả lời", response.Answer)
	require.Len(t, response.Sources, 1)
	assert.Equal(t, "quy-che.pdf", response.Sources[0].Metadata.OriginalFilename)
	assert.True(t, response.IsFallback)
}

func TestUploadDocumentMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "quy-che.pdf", header.Filename)
		assert.Equal(t, "quy-che", r.FormValue("collection_name"))
		assert.Equal(t, "1000", r.FormValue("chunk_size"))
		assert.Equal(t, "200", r.FormValue("chunk_overlap"))

		var metadata map[string]string
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("metadata")), &metadata))
		assert.Equal(t, "Quy chế đào tạo", metadata["display_name"])

		json.NewEncoder(w).Encode(UploadResult{Status: "processing", CollectionName: "quy-che"})
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	result, err := client.UploadDocument(context.Background(), "quy-che.pdf", strings.NewReader("%PDF-1.4"), UploadOptions{
		CollectionName: "quy-che",
		ChunkSize:      1000,
		ChunkOverlap:   200,
		Metadata:       map[string]string{"display_name": "Quy chế đào tạo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "processing", result.Status)
}

func TestDeleteDocument(t *testing.T) {
	var gotPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.Method + " " + r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	require.NoError(t, client.DeleteDocument(context.Background(), "doc-123"))
	assert.Equal(t, "DELETE /api/documents/doc-123", gotPath.Load())
}

func TestTimeoutClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/health") {
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			return
		}
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(testConfig(t, server.URL+"/api"))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.QueryRAG(ctx, &QueryRequest{Query: "hi"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTimeout))
}
