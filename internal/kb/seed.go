package kb

import (
	"context"
	"fmt"

	"guidebot/internal/models"
)

// seedEntries is the starter FAQ corpus inserted on first run so the bot
// answers out of the box. Knowledge refresh runs replace or extend it.
var seedEntries = []models.KnowledgeMatch{
	{
		ID:       "faq-admissions-process",
		Question: "How do I apply for admission?",
		Answer: "Applications are submitted through the online admissions portal. Fill in the" +
			" application form, upload your transcripts, and pay the application fee. Entrance" +
			" exam results are announced about four weeks after the test window closes.",
		Category:   "admissions",
		Tags:       []string{"admissions", "application", "apply"},
		SourceName: "Admissions Office",
		SourceURL:  "https://example.edu/admissions",
	},
	{
		ID:       "faq-admissions-deadline",
		Question: "When is the admission application deadline?",
		Answer: "The main application window runs from November to April. Late applications are" +
			" accepted until mid-May with an additional processing fee.",
		Category: "admissions",
		Tags:     []string{"admissions", "deadline"},
	},
	{
		ID:       "faq-courses-engineering",
		Question: "What engineering courses are offered?",
		Answer: "The engineering school offers undergraduate programmes in computer science," +
			" electronics, mechanical, civil, and biotechnology, plus postgraduate and research" +
			" tracks in each department.",
		Category:   "courses",
		Tags:       []string{"courses", "engineering", "programmes"},
		SourceName: "Academic Catalogue",
		SourceURL:  "https://example.edu/courses",
	},
	{
		ID:       "faq-hostel-fees",
		Question: "What are the hostel fees and room options?",
		Answer: "Hostel fees start at 90,000 per year for shared rooms, including mess charges." +
			" Single occupancy and air-conditioned rooms are available at higher tiers.",
		Category: "hostel",
		Tags:     []string{"hostel", "fees", "accommodation"},
	},
	{
		ID:       "faq-placements",
		Question: "How are the campus placements?",
		Answer: "Placement season runs from August to February. Over 600 companies visit each" +
			" year, and the placement cell runs preparatory workshops from the third year onward.",
		Category:   "placements",
		Tags:       []string{"placements", "careers", "jobs"},
		SourceName: "Placement Cell",
		SourceURL:  "https://example.edu/placements",
	},
	{
		ID:       "faq-scholarships",
		Question: "What scholarships are available?",
		Answer: "Merit scholarships cover 25 to 100 percent of tuition based on entrance exam" +
			" rank. Need-based grants and sports scholarships have separate application tracks" +
			" through the financial aid office.",
		Category: "scholarships",
		Tags:     []string{"scholarships", "financial aid", "fees"},
	},
	{
		ID:       "faq-campus-facilities",
		Question: "What facilities does the campus have?",
		Answer: "The campus has a central library, research labs, sports complexes, multiple" +
			" food courts, an on-campus hospital, and shuttle services between hostel blocks" +
			" and academic buildings.",
		Category: "campus",
		Tags:     []string{"campus", "facilities", "library"},
	},
	{
		ID:       "faq-transport",
		Question: "Is there transport between campuses?",
		Answer: "University buses connect all campuses and nearby railway stations. Passes are" +
			" issued per semester from the transport office near the main gate.",
		Category: "campus",
		Tags:     []string{"transport", "buses", "campus"},
	},
}

// Seed inserts the starter corpus when the knowledge base is empty.
// Returns the number of entries inserted.
func (s *Store) Seed(ctx context.Context) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count FAQ entries: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for _, entry := range seedEntries {
		if err := s.Add(ctx, entry); err != nil {
			return 0, err
		}
	}
	return len(seedEntries), nil
}
