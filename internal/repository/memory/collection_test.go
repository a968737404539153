package memory

import (
	"errors"
	"sync"
	"testing"

	xerrors "crm-client/internal/pkg/errors"
)

type record struct {
	ID    int64
	Owner int64
	Name  string
}

func (r record) GetID() int64 { return r.ID }

func insertNamed(t *testing.T, c *Collection[record], name string, owner int64) record {
	t.Helper()
	r, err := c.Insert(func(id int64) (record, error) {
		return record{ID: id, Name: name, Owner: owner}, nil
	})
	if err != nil {
		t.Fatalf("insert %s: %v", name, err)
	}
	return r
}

func TestInsertAssignsIncreasingIDsWithoutReuse(t *testing.T) {
	c := NewCollection[record]("record", nil)

	a := insertNamed(t, c, "a", 0)
	b := insertNamed(t, c, "b", 0)
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", a.ID, b.ID)
	}

	if _, err := c.Delete(b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	next := insertNamed(t, c, "c", 0)
	if next.ID != 3 {
		t.Fatalf("id after deleting the highest record = %d, want 3", next.ID)
	}
}

func TestSeededCollectionContinuesAfterMaxID(t *testing.T) {
	c := NewCollection("record", []record{{ID: 7}, {ID: 3}})
	if r := insertNamed(t, c, "x", 0); r.ID != 8 {
		t.Fatalf("id = %d, want 8", r.ID)
	}
}

func TestInsertBuildErrorLeavesCollectionUnchanged(t *testing.T) {
	c := NewCollection[record]("record", nil)
	boom := errors.New("boom")
	if _, err := c.Insert(func(int64) (record, error) { return record{}, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d", c.Len())
	}
	if r := insertNamed(t, c, "a", 0); r.ID != 1 {
		t.Fatalf("failed build should not burn an id, got %d", r.ID)
	}
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	c := NewCollection[record]("record", nil)
	if _, err := c.Update(42, func(*record) error { return nil }); !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("update missing err = %v", err)
	}
	if _, err := c.Delete(42); !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("delete missing err = %v", err)
	}
}

func TestUpdateMutateErrorKeepsRecord(t *testing.T) {
	c := NewCollection[record]("record", nil)
	r := insertNamed(t, c, "a", 0)

	_, err := c.Update(r.ID, func(rec *record) error {
		rec.Name = "changed"
		return errors.New("rejected")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	got, _ := c.Find(r.ID)
	if got.Name != "a" {
		t.Fatalf("name = %q, want unchanged", got.Name)
	}
}

func TestDeleteReturnsRemovedRecordAndKeepsOrder(t *testing.T) {
	c := NewCollection[record]("record", nil)
	insertNamed(t, c, "a", 0)
	b := insertNamed(t, c, "b", 0)
	insertNamed(t, c, "c", 0)

	removed, err := c.Delete(b.ID)
	if err != nil || removed.Name != "b" {
		t.Fatalf("removed = %+v, err = %v", removed, err)
	}
	all := c.All()
	if len(all) != 2 || all[0].Name != "a" || all[1].Name != "c" {
		t.Fatalf("all = %+v", all)
	}
}

func TestDeleteWhere(t *testing.T) {
	c := NewCollection[record]("record", nil)
	insertNamed(t, c, "a", 1)
	insertNamed(t, c, "b", 2)
	insertNamed(t, c, "c", 1)

	removed := c.DeleteWhere(func(r record) bool { return r.Owner == 1 })
	if len(removed) != 2 {
		t.Fatalf("removed %d, want 2", len(removed))
	}
	if all := c.All(); len(all) != 1 || all[0].Name != "b" {
		t.Fatalf("all = %+v", all)
	}
}

func TestFilterNeverNil(t *testing.T) {
	c := NewCollection[record]("record", nil)
	if got := c.Filter(func(record) bool { return true }); got == nil {
		t.Fatalf("Filter returned nil")
	}
}

func TestPrependKeepsNewestFirst(t *testing.T) {
	c := NewCollection[record]("record", nil)
	for _, name := range []string{"old", "new"} {
		if _, err := c.Prepend(func(id int64) (record, error) { return record{ID: id, Name: name}, nil }); err != nil {
			t.Fatalf("prepend: %v", err)
		}
	}
	all := c.All()
	if all[0].Name != "new" || all[0].ID != 2 {
		t.Fatalf("all = %+v", all)
	}
}

func TestClearKeepsCounting(t *testing.T) {
	c := NewCollection[record]("record", nil)
	insertNamed(t, c, "a", 0)
	insertNamed(t, c, "b", 0)

	c.Clear()
	if r := insertNamed(t, c, "c", 0); r.ID != 3 {
		t.Fatalf("after Clear id = %d, want 3", r.ID)
	}
	c.Clear()
	if r := insertNamed(t, c, "d", 0); r.ID != 4 {
		t.Fatalf("after second Clear id = %d, want 4", r.ID)
	}
}

func TestConcurrentInsertsAreUnique(t *testing.T) {
	c := NewCollection[record]("record", nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Insert(func(id int64) (record, error) { return record{ID: id}, nil })
		}()
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, r := range c.All() {
		if seen[r.ID] {
			t.Fatalf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true
	}
	if len(seen) != 50 {
		t.Fatalf("got %d records", len(seen))
	}
}
