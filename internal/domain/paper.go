package domain

import "time"

// Paper represents the canonical runtime truth of one academic paper.
//
// It is NOT tied to the catalog file, SQLite or any external source.
// All inputs (catalog fetches, votes, comments) are merged into this
// structure.
//
// A Paper is uniquely identified by its ID.
type Paper struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the catalog accession number.
	// Example: 2104.12345
	ID string `json:"id"`

	// ─────────────────────────────
	// Descriptive metadata
	// (may be overwritten by a catalog refresh)
	// ─────────────────────────────

	// Title of the paper. Later fetches may correct it.
	Title string `json:"title"`

	// Authors in catalog order.
	Authors []string `json:"authors"`

	// Summary is the abstract text.
	Summary string `json:"summary"`

	// PublishedDate is the publication timestamp reported by the catalog.
	PublishedDate time.Time `json:"published_date"`

	// PDFURL points at the full-text PDF.
	// Example: https://arxiv.org/pdf/2104.12345.pdf
	PDFURL string `json:"pdf_url"`

	// ─────────────────────────────
	// User-generated state
	// (never touched by a refresh)
	// ─────────────────────────────

	// Upvotes and Downvotes only ever grow, one at a time,
	// through the vote mutator.
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`

	// Comments in append order. Owned by the paper: deleting the
	// paper deletes them.
	Comments []*Comment `json:"comments"`
}

// Comment is a user-authored note on a paper. Immutable once created;
// it only disappears when its paper is deleted.
type Comment struct {
	// ID is a random identifier generated at creation.
	ID string `json:"id"`

	// PaperID is the owning paper.
	PaperID string `json:"paper_id"`

	// Text is the comment body.
	Text string `json:"text"`

	// CreatedAt is set by the server at construction, never by the client.
	CreatedAt time.Time `json:"created_at"`

	// UserID is the opaque session identifier that authored the comment.
	// It is not a stable account identity.
	UserID string `json:"user_id"`

	// Username is the display name active when the comment was posted.
	// It stays frozen here even if the user renames themselves later.
	Username string `json:"username"`
}

// VoteKind selects which counter a vote targets.
type VoteKind string

const (
	VoteUp   VoteKind = "up"
	VoteDown VoteKind = "down"
)

// MergeMeta overwrites the descriptive fields of p with those of src,
// leaving votes and comments alone. This is the single place that knows
// which fields a catalog refresh is allowed to touch.
func (p *Paper) MergeMeta(src *Paper) {
	p.Title = src.Title
	p.Authors = append([]string(nil), src.Authors...)
	p.Summary = src.Summary
	p.PublishedDate = src.PublishedDate
	p.PDFURL = src.PDFURL
}

// Clone returns a deep copy of the paper, comments included.
func (p *Paper) Clone() *Paper {
	cp := *p
	cp.Authors = append([]string(nil), p.Authors...)
	cp.Comments = make([]*Comment, len(p.Comments))
	for i, c := range p.Comments {
		cc := *c
		cp.Comments[i] = &cc
	}
	return &cp
}
