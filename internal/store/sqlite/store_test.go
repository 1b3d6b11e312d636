package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/paperdesk/paperdesk/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testPaper(id string) *domain.Paper {
	return &domain.Paper{
		ID:            id,
		Title:         "Quantum Computing: A New Era",
		Authors:       []string{"Alice Johnson", "Bob Smith"},
		Summary:       "Latest advancements in quantum computing.",
		PublishedDate: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		PDFURL:        "https://arxiv.org/pdf/" + id + ".pdf",
	}
}

func TestInsertAndGetPaper(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := testPaper("2104.12345")
	if err := s.InsertPaper(ctx, p); err != nil {
		t.Fatalf("InsertPaper() failed: %v", err)
	}

	got, err := s.GetPaper(ctx, "2104.12345")
	if err != nil {
		t.Fatalf("GetPaper() failed: %v", err)
	}
	if got.Title != p.Title {
		t.Errorf("Title = %q, want %q", got.Title, p.Title)
	}
	if len(got.Authors) != 2 || got.Authors[0] != "Alice Johnson" {
		t.Errorf("Authors = %v, want %v", got.Authors, p.Authors)
	}
	if !got.PublishedDate.Equal(p.PublishedDate) {
		t.Errorf("PublishedDate = %v, want %v", got.PublishedDate, p.PublishedDate)
	}
	if got.Upvotes != 0 || got.Downvotes != 0 {
		t.Errorf("new paper should have zero votes, got %d/%d", got.Upvotes, got.Downvotes)
	}
	if len(got.Comments) != 0 {
		t.Errorf("new paper should have no comments, got %d", len(got.Comments))
	}
}

func TestGetPaperNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetPaper(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetPaper() error = %v, want ErrNotFound", err)
	}
}

func TestInsertDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.InsertPaper(ctx, testPaper("2104.12345")); err != nil {
		t.Fatalf("first InsertPaper() failed: %v", err)
	}
	err := s.InsertPaper(ctx, testPaper("2104.12345"))
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("duplicate InsertPaper() error = %v, want ErrDuplicateID", err)
	}
}

func TestUpdatePaperMetaPreservesVotes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := testPaper("2104.12345")
	if err := s.InsertPaper(ctx, p); err != nil {
		t.Fatalf("InsertPaper() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.AddVote(ctx, p.ID, domain.VoteUp); err != nil {
			t.Fatalf("AddVote() failed: %v", err)
		}
	}

	updated := testPaper("2104.12345")
	updated.Title = "Quantum Computing: Second Edition"
	if err := s.UpdatePaperMeta(ctx, updated); err != nil {
		t.Fatalf("UpdatePaperMeta() failed: %v", err)
	}

	got, err := s.GetPaper(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPaper() failed: %v", err)
	}
	if got.Title != "Quantum Computing: Second Edition" {
		t.Errorf("Title = %q, update not applied", got.Title)
	}
	if got.Upvotes != 3 {
		t.Errorf("Upvotes = %d, want 3 (update must not touch votes)", got.Upvotes)
	}
}

func TestUpdatePaperMetaNotFound(t *testing.T) {
	s := openTestStore(t)

	err := s.UpdatePaperMeta(context.Background(), testPaper("ghost"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdatePaperMeta() error = %v, want ErrNotFound", err)
	}
}

func TestAddVote(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := testPaper("2104.12345")
	if err := s.InsertPaper(ctx, p); err != nil {
		t.Fatalf("InsertPaper() failed: %v", err)
	}

	if err := s.AddVote(ctx, p.ID, domain.VoteUp); err != nil {
		t.Fatalf("AddVote(up) failed: %v", err)
	}
	if err := s.AddVote(ctx, p.ID, domain.VoteDown); err != nil {
		t.Fatalf("AddVote(down) failed: %v", err)
	}

	got, _ := s.GetPaper(ctx, p.ID)
	if got.Upvotes != 1 || got.Downvotes != 1 {
		t.Errorf("votes = %d/%d, want 1/1", got.Upvotes, got.Downvotes)
	}

	if err := s.AddVote(ctx, "ghost", domain.VoteUp); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("AddVote(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestAppendComment(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := testPaper("2104.12345")
	if err := s.InsertPaper(ctx, p); err != nil {
		t.Fatalf("InsertPaper() failed: %v", err)
	}

	c1 := &domain.Comment{ID: "c1", PaperID: p.ID, Text: "first", CreatedAt: time.Now().UTC(), UserID: "u1", Username: "alice"}
	c2 := &domain.Comment{ID: "c2", PaperID: p.ID, Text: "second", CreatedAt: time.Now().UTC(), UserID: "u2", Username: "bob"}
	if err := s.AppendComment(ctx, p.ID, c1); err != nil {
		t.Fatalf("AppendComment() failed: %v", err)
	}
	if err := s.AppendComment(ctx, p.ID, c2); err != nil {
		t.Fatalf("AppendComment() failed: %v", err)
	}

	got, _ := s.GetPaper(ctx, p.ID)
	if len(got.Comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(got.Comments))
	}
	if got.Comments[0].ID != "c1" || got.Comments[1].ID != "c2" {
		t.Error("comments not in append order")
	}
	if got.Comments[0].Username != "alice" {
		t.Errorf("Username = %q, want alice", got.Comments[0].Username)
	}
}

func TestAppendCommentUnknownPaper(t *testing.T) {
	s := openTestStore(t)

	c := &domain.Comment{ID: "c1", PaperID: "ghost", Text: "hello", CreatedAt: time.Now(), UserID: "u1", Username: "alice"}
	err := s.AppendComment(context.Background(), "ghost", c)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("AppendComment() error = %v, want ErrNotFound", err)
	}
}

func TestDeletePaperCascadesComments(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := testPaper("2104.12345")
	if err := s.InsertPaper(ctx, p); err != nil {
		t.Fatalf("InsertPaper() failed: %v", err)
	}
	c := &domain.Comment{ID: "c1", PaperID: p.ID, Text: "bye", CreatedAt: time.Now(), UserID: "u1", Username: "alice"}
	if err := s.AppendComment(ctx, p.ID, c); err != nil {
		t.Fatalf("AppendComment() failed: %v", err)
	}

	if err := s.DeletePaper(ctx, p.ID); err != nil {
		t.Fatalf("DeletePaper() failed: %v", err)
	}

	if _, err := s.GetPaper(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("paper still present after delete: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM comments`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("comments remaining after cascade delete = %d, want 0", count)
	}
}

func TestReconcileBatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	existing := testPaper("2104.12345")
	if err := s.InsertPaper(ctx, existing); err != nil {
		t.Fatalf("InsertPaper() failed: %v", err)
	}
	if err := s.AddVote(ctx, existing.ID, domain.VoteUp); err != nil {
		t.Fatalf("AddVote() failed: %v", err)
	}

	refreshed := testPaper("2104.12345")
	refreshed.Title = "Quantum Computing (corrected)"
	fresh := testPaper("2104.67890")

	ins, upd, err := s.ReconcileBatch(ctx, []*domain.Paper{refreshed, fresh})
	if err != nil {
		t.Fatalf("ReconcileBatch() failed: %v", err)
	}
	if ins != 1 || upd != 1 {
		t.Errorf("ReconcileBatch() = %d inserted, %d updated, want 1/1", ins, upd)
	}

	got, _ := s.GetPaper(ctx, "2104.12345")
	if got.Title != "Quantum Computing (corrected)" {
		t.Errorf("Title = %q, reconcile did not update meta", got.Title)
	}
	if got.Upvotes != 1 {
		t.Errorf("Upvotes = %d, reconcile must not touch votes", got.Upvotes)
	}

	all, err := s.ListPapers(ctx)
	if err != nil {
		t.Fatalf("ListPapers() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListPapers() = %d papers, want 2", len(all))
	}
}

func TestListPapersEmpty(t *testing.T) {
	s := openTestStore(t)

	all, err := s.ListPapers(context.Background())
	if err != nil {
		t.Fatalf("ListPapers() failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("ListPapers() = %d papers, want 0", len(all))
	}
}
