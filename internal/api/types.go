package api

// QueryContext carries course information and the rolling conversational
// window for course-scoped queries.
type QueryContext struct {
	CourseTitle       string         `json:"course_title,omitempty"`
	CourseCode        string         `json:"course_code,omitempty"`
	CourseDescription string         `json:"course_description,omitempty"`
	Chapters          []string       `json:"chapters,omitempty"`
	ChatHistory       []HistoryEntry `json:"chat_history,omitempty"`
}

// HistoryEntry is one prior turn of conversational context.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryRequest is the payload of POST /query/rag.
type QueryRequest struct {
	Query           string         `json:"query"`
	CollectionNames []string       `json:"collection_names,omitempty"`
	Context         *QueryContext  `json:"context,omitempty"`
	ChatHistory     []HistoryEntry `json:"chat_history,omitempty"`
	ImageData       string         `json:"image_data,omitempty"`
	HasImage        bool           `json:"has_image"`
	FallbackToLLM   bool           `json:"fallback_to_llm"`
	TopK            int            `json:"top_k"`
	TopN            int            `json:"top_n"`
	Temperature     float32        `json:"temperature"`
	Model           string         `json:"model"`
	MaxTokens       int            `json:"max_tokens"`
	Prompt          string         `json:"prompt,omitempty"`
}

// SourceMetadata describes where a source excerpt came from.
type SourceMetadata struct {
	OriginalFilename string `json:"original_filename"`
}

// Source is one excerpt the answer was grounded on.
type Source struct {
	Text     string         `json:"text"`
	Metadata SourceMetadata `json:"metadata"`
}

// QueryResponse is the reply of POST /query/rag.
type QueryResponse struct {
	Answer     string   `json:"answer"`
	Sources    []Source `json:"sources"`
	IsFallback bool     `json:"is_fallback"`
}

// RetrieveRequest is the payload of POST /query/retrieve.
type RetrieveRequest struct {
	Query           string   `json:"query"`
	CollectionNames []string `json:"collection_names,omitempty"`
	TopK            int      `json:"top_k"`
}

// RetrievedDocument is one raw retrieval hit, without generation.
type RetrievedDocument struct {
	Text     string            `json:"text"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

// Collection is a named grouping of indexed documents on the backend.
type Collection struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name,omitempty"`
	DocumentCount int    `json:"document_count,omitempty"`
	VectorsCount  int    `json:"vectors_count,omitempty"`
}

// UploadResult is the reply of POST /documents/upload.
type UploadResult struct {
	Status         string `json:"status"`
	CollectionName string `json:"collection_name"`
}

// UploadOptions configures a document upload.
type UploadOptions struct {
	CollectionName string
	ChunkSize      int
	ChunkOverlap   int
	Metadata       map[string]string
}

type healthResponse struct {
	Status string `json:"status"`
}
