package arxiv

// CatalogConfig represents the top-level structure of catalog.yaml.
type CatalogConfig struct {
	Papers []PaperEntry `yaml:"papers"`
}

// PaperEntry contains the raw catalog properties of one paper.
// Exactly one of Published / AgeDays should be set: AgeDays places the
// paper N days before "now", which keeps a sample catalog from aging
// out of the date-range presets.
type PaperEntry struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Authors   []string `yaml:"authors"`
	Summary   string   `yaml:"summary"`
	Published string   `yaml:"published,omitempty"` // RFC 3339
	AgeDays   *int     `yaml:"age_days,omitempty"`
	PDFURL    string   `yaml:"pdf_url"`
}
