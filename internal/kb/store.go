package kb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"guidebot/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS faqs (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    category TEXT,
    tags TEXT,
    source_name TEXT,
    source_url TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE VIRTUAL TABLE IF NOT EXISTS faqs_fts USING fts4(
    question,
    answer,
    tokenize=porter
);

-- Triggers keep the FTS index up to date
CREATE TRIGGER IF NOT EXISTS faqs_ai AFTER INSERT ON faqs BEGIN
    INSERT INTO faqs_fts(docid, question, answer)
    VALUES (new.rowid, new.question, new.answer);
END;

CREATE TRIGGER IF NOT EXISTS faqs_ad AFTER DELETE ON faqs BEGIN
    DELETE FROM faqs_fts WHERE docid = old.rowid;
END;

CREATE TRIGGER IF NOT EXISTS faqs_au AFTER UPDATE ON faqs BEGIN
    DELETE FROM faqs_fts WHERE docid = old.rowid;
    INSERT INTO faqs_fts(docid, question, answer)
    VALUES (new.rowid, new.question, new.answer);
END;`

// Store is the FAQ knowledge base backed by SQLite with full-text search.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the knowledge base at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply knowledge base schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Count reports the number of FAQ entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM faqs").Scan(&n)
	return n, err
}

// Add inserts one FAQ entry. Tags are stored comma separated.
func (s *Store) Add(ctx context.Context, entry models.KnowledgeMatch) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO faqs (id, question, answer, category, tags, source_name, source_url)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Question, entry.Answer, entry.Category,
		strings.Join(entry.Tags, ","), entry.SourceName, entry.SourceURL)
	if err != nil {
		return fmt.Errorf("failed to add FAQ entry: %w", err)
	}
	return nil
}

// FindBestMatch returns the highest-scoring FAQ entry for query, or nil
// when nothing in the corpus relates to it.
func (s *Store) FindBestMatch(ctx context.Context, query string) (*models.KnowledgeMatch, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT f.id, f.question, f.answer, f.category, f.tags, f.source_name, f.source_url
        FROM faqs f
        JOIN faqs_fts ON f.rowid = faqs_fts.docid
        WHERE faqs_fts MATCH ?`, strings.Join(terms, " OR "))
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge base: %w", err)
	}
	defer rows.Close()

	var best *models.KnowledgeMatch
	for rows.Next() {
		var m models.KnowledgeMatch
		var category, tags, sourceName, sourceURL sql.NullString
		if err := rows.Scan(&m.ID, &m.Question, &m.Answer, &category, &tags, &sourceName, &sourceURL); err != nil {
			return nil, fmt.Errorf("failed to scan FAQ entry: %w", err)
		}
		m.Category = category.String
		m.Tags = splitTags(tags.String)
		m.SourceName = sourceName.String
		m.SourceURL = sourceURL.String
		m.Score = scoreOverlap(terms, m.Question, m.Tags)

		if best == nil || m.Score > best.Score {
			match := m
			best = &match
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read FAQ results: %w", err)
	}
	return best, nil
}

// scoreOverlap rates a candidate by the fraction of query terms appearing
// in its question or tags. The result is always within [0, 1].
func scoreOverlap(terms []string, question string, tags []string) float64 {
	haystack := make(map[string]bool)
	for _, w := range tokenize(question) {
		haystack[w] = true
	}
	for _, tag := range tags {
		for _, w := range tokenize(tag) {
			haystack[w] = true
		}
	}

	matched := 0
	for _, term := range terms {
		if haystack[term] {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping short
// stop-ish words that add FTS noise.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

func splitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
