package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"time2gather/core/params"
	"time2gather/modules/meeting/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type fakeDB struct {
	queries []string
	args    [][]any
	count   int
	rows    []entity.MeetingSubmission
	err     error
}

func (f *fakeDB) record(query string, args []any) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
}

func (f *fakeDB) ExecContext(_ context.Context, query string, args ...any) error {
	f.record(query, args)
	return f.err
}

func (f *fakeDB) GetContext(_ context.Context, dest any, query string, args ...any) error {
	f.record(query, args)
	if f.err != nil {
		return f.err
	}
	switch d := dest.(type) {
	case *int:
		*d = f.count
	case *entity.MeetingSubmission:
		*d = entity.MeetingSubmission{MeetingCode: args[1].(string)}
		d.ID = args[0].(uuid.UUID)
	default:
		return fmt.Errorf("unexpected dest %T", dest)
	}
	return nil
}

func (f *fakeDB) SelectContext(_ context.Context, dest any, query string, args ...any) error {
	f.record(query, args)
	if f.err != nil {
		return f.err
	}
	*dest.(*[]entity.MeetingSubmission) = f.rows
	return nil
}

func (f *fakeDB) NamedExecContext(_ context.Context, query string, arg any) (sql.Result, error) {
	f.record(query, []any{arg})
	return nil, f.err
}

func (f *fakeDB) SQLx() *sqlx.DB { return nil }

func TestCreate(t *testing.T) {
	db := &fakeDB{}
	repo := NewSubmissionRepository(db)

	id := uuid.New()
	sub := &entity.MeetingSubmission{MeetingCode: "mtg_1", UserID: 7}
	sub.ID = id

	created, err := repo.Create(context.Background(), sub)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != id || created.MeetingCode != "mtg_1" {
		t.Fatalf("unexpected row %+v", created)
	}
	if !strings.Contains(db.queries[0], "INSERT INTO meeting_submissions") {
		t.Fatalf("unexpected query %s", db.queries[0])
	}
	if len(db.args[0]) != 9 {
		t.Fatalf("expected 9 bind args, got %d", len(db.args[0]))
	}
}

func TestListByMeeting_Pagination(t *testing.T) {
	db := &fakeDB{count: 45, rows: []entity.MeetingSubmission{{MeetingCode: "mtg_1"}}}
	repo := NewSubmissionRepository(db)

	page, err := repo.ListByMeeting(context.Background(), "mtg_1", params.QueryParams{PageNumber: 3, PageSize: 20})
	if err != nil {
		t.Fatalf("ListByMeeting: %v", err)
	}
	if page.TotalItems != 45 || page.TotalPages != 3 || page.PageNumber != 3 {
		t.Fatalf("unexpected page %+v", page)
	}
	selectArgs := db.args[1]
	if selectArgs[1] != 20 || selectArgs[2] != 40 {
		t.Fatalf("expected limit 20 offset 40, got %v", selectArgs)
	}
}

func TestListByMeeting_Error(t *testing.T) {
	db := &fakeDB{err: sql.ErrConnDone}
	if _, err := NewSubmissionRepository(db).ListByMeeting(context.Background(), "mtg_1", params.QueryParams{PageNumber: 1, PageSize: 10}); err == nil {
		t.Fatalf("expected error")
	}
}
