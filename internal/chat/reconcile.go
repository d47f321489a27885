package chat

import (
	"math"
	"strings"

	"guidebot/internal/models"
)

// ModelKnowledgeBase is the generation backend's marker for "I only echoed
// the knowledge base"; in that case the raw FAQ answer wins.
const ModelKnowledgeBase = "knowledge-base"

// Extras carries the generation attributes surfaced alongside a response.
// Zero-valued fields are omitted from the outgoing payload.
type Extras struct {
	Category   string
	ModelUsed  string
	TokensUsed int
}

// Reconcile decides the response text and metadata for a turn, given an
// optional knowledge-base match and an optional generation result. It is a
// pure function: no side effects, deterministic for any input combination.
//
// Precedence: a real model completion supplies the text; a knowledge-base
// match always supplies the metadata and overrides the text when the model
// did not produce an independent answer; with neither available, fallback
// is returned with no metadata.
func Reconcile(match *models.KnowledgeMatch, gen *models.GenerationResult, fallback string) (string, *models.ResponseMetadata, Extras) {
	text := ""
	var meta *models.ResponseMetadata
	var extras Extras

	if gen != nil {
		if content := strings.TrimSpace(gen.Content); content != "" {
			text = content
		}
		extras = Extras{
			Category:   gen.Category,
			ModelUsed:  gen.ModelUsed,
			TokensUsed: gen.TokensUsed,
		}
	}

	switch {
	case match != nil:
		meta = metadataFromMatch(match)
		// An empty completion is no independent model answer; the FAQ
		// answer wins unless the model actually produced one.
		if gen == nil || text == "" || gen.ModelUsed == ModelKnowledgeBase {
			text = strings.TrimSpace(match.Answer)
		}
	case gen != nil && gen.KnowledgeBase != nil:
		meta = metadataFromSummary(gen.KnowledgeBase)
	}

	if text == "" {
		text = fallback
	}
	return text, meta, extras
}

func metadataFromMatch(m *models.KnowledgeMatch) *models.ResponseMetadata {
	meta := &models.ResponseMetadata{
		FAQID:    m.ID,
		Question: m.Question,
		Category: m.Category,
		Tags:     tagsOrEmpty(m.Tags),
		Score:    roundScore(m.Score),
	}
	if m.SourceName != "" || m.SourceURL != "" {
		meta.Source = &models.SourceInfo{Name: m.SourceName, URL: m.SourceURL}
	}
	return meta
}

func metadataFromSummary(s *models.KnowledgeSummary) *models.ResponseMetadata {
	meta := &models.ResponseMetadata{
		Question: s.Question,
		Category: s.Category,
		Tags:     tagsOrEmpty(s.Tags),
		Score:    roundScore(s.Score),
	}
	if s.SourceName != "" || s.SourceURL != "" {
		meta.Source = &models.SourceInfo{Name: s.SourceName, URL: s.SourceURL}
	}
	return meta
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func roundScore(s float64) float64 {
	return math.Round(s*1000) / 1000
}
