package models

// EntryKind distinguishes who produced a history entry.
type EntryKind string

const (
	EntryUser      EntryKind = "user"
	EntryAssistant EntryKind = "assistant"
)

// HistoryEntry is one recorded turn half (a user message or an assistant
// reply). Entries are immutable once appended to the history store.
type HistoryEntry struct {
	ID        string            `json:"id"`
	Kind      EntryKind         `json:"type"`
	Text      string            `json:"message"`
	Timestamp float64           `json:"timestamp"`
	Metadata  *ResponseMetadata `json:"metadata,omitempty"`
}

// ResponseMetadata describes the knowledge-base grounding of an assistant
// reply, when one exists.
type ResponseMetadata struct {
	FAQID    string      `json:"faq_id,omitempty"`
	Question string      `json:"question"`
	Category string      `json:"category,omitempty"`
	Tags     []string    `json:"tags"`
	Score    float64     `json:"score"`
	Source   *SourceInfo `json:"source,omitempty"`
}

// SourceInfo points at where a knowledge-base entry originally came from.
type SourceInfo struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// KnowledgeMatch is a scored candidate answer from the FAQ knowledge base.
// A Score of 0 is still a valid match; "no match" is signalled by absence.
type KnowledgeMatch struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags"`
	Score      float64  `json:"score"`
	SourceName string   `json:"source_name,omitempty"`
	SourceURL  string   `json:"source_url,omitempty"`
}

// KnowledgeSummary is the knowledge-base grounding a generation backend may
// report alongside its completion.
type KnowledgeSummary struct {
	Question   string   `json:"question"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags"`
	Score      float64  `json:"score"`
	SourceName string   `json:"source_name,omitempty"`
	SourceURL  string   `json:"source_url,omitempty"`
}

// GenerationResult is the outcome of a generative-completion call. The call
// may fail entirely, in which case the caller holds no result at all.
type GenerationResult struct {
	Content       string            `json:"content"`
	Category      string            `json:"category,omitempty"`
	ModelUsed     string            `json:"model_used,omitempty"`
	TokensUsed    int               `json:"tokens_used,omitempty"`
	KnowledgeBase *KnowledgeSummary `json:"knowledge_base,omitempty"`
}

// UserProfile is a lightweight registration record kept only for analytics.
type UserProfile struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Campus    string `json:"campus,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ScrapeStatus is the coarse lifecycle of the knowledge refresh runner.
type ScrapeStatus string

const (
	ScrapeIdle      ScrapeStatus = "idle"
	ScrapeCompleted ScrapeStatus = "completed"
)

// SourceSummary describes one scraped source in a refresh run.
type SourceSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items int    `json:"items"`
}

// ScrapingState is the most recent knowledge refresh run metadata.
type ScrapingState struct {
	Status        ScrapeStatus    `json:"status"`
	LastStarted   string          `json:"last_started,omitempty"`
	LastCompleted string          `json:"last_completed,omitempty"`
	Sources       []SourceSummary `json:"sources"`
}
