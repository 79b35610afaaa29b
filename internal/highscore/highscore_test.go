package highscore

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var day = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func fullTable() []Entry {
	var list []Entry
	for i := 0; i < MaxEntries; i++ {
		list = append(list, Entry{Score: 1000 - i*100, Kills: i, Date: day})
	}
	return list
}

func TestInsertOrdersAndTruncates(t *testing.T) {
	list := fullTable()

	got := Insert(list, Entry{Score: 50})
	if len(got) != MaxEntries {
		t.Fatalf("len = %d", len(got))
	}
	for i := range got {
		if got[i] != list[i] {
			t.Fatalf("low score changed the table at %d: %+v", i, got[i])
		}
	}

	got = Insert(list, Entry{Score: 550, Kills: 99})
	if len(got) != MaxEntries {
		t.Fatalf("len = %d", len(got))
	}
	if got[5].Score != 550 || got[5].Kills != 99 {
		t.Fatalf("new entry at 5 = %+v", got[5])
	}
	if got[MaxEntries-1].Score != 200 {
		t.Fatalf("last = %+v, want the old 9th entry", got[MaxEntries-1])
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("not sorted at %d", i)
		}
	}
	if list[5].Score != 500 {
		t.Fatal("Insert modified its input")
	}
}

func TestInsertTieKeepsEarlierFirst(t *testing.T) {
	list := []Entry{{Score: 300, Kills: 1}}
	got := Insert(list, Entry{Score: 300, Kills: 2})
	if got[0].Kills != 1 || got[1].Kills != 2 {
		t.Fatalf("tie order = %+v", got)
	}
}

func TestQualifies(t *testing.T) {
	if !Qualifies(nil, 0) {
		t.Error("empty table should accept anything")
	}
	list := fullTable()
	if Qualifies(list, 100) {
		t.Error("score equal to last entry qualified")
	}
	if !Qualifies(list, 101) {
		t.Error("better score did not qualify")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.yaml")
	s := NewFileStore(path, nil)

	got, err := s.Load()
	if err != nil || len(got) != 0 {
		t.Fatalf("missing file Load = %v, %v", got, err)
	}

	if err := s.Save(Entry{Score: 100, Kills: 1, TimeSurvived: 30, Date: day}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(Entry{Score: 400, Kills: 4, TimeSurvived: 90, Date: day}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err = NewFileStore(path, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].Score != 400 || got[1].Score != 100 {
		t.Fatalf("Load = %+v", got)
	}
	if !got[0].Date.Equal(day) || got[0].TimeSurvived != 90 {
		t.Fatalf("entry fields lost: %+v", got[0])
	}
}

func TestFileStoreMalformedIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	if err := os.WriteFile(path, []byte("scores: [this is: {not valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path, nil)

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load = %+v, want empty", got)
	}

	if err := s.Save(Entry{Score: 10}); err != nil {
		t.Fatalf("Save over malformed file: %v", err)
	}
	got, _ = s.Load()
	if len(got) != 1 || got[0].Score != 10 {
		t.Fatalf("after save = %+v", got)
	}
}

func TestMemoryStore(t *testing.T) {
	var m MemoryStore
	for i := 0; i < 12; i++ {
		if err := m.Save(Entry{Score: i}); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := m.Load()
	if len(got) != MaxEntries || got[0].Score != 11 || got[MaxEntries-1].Score != 2 {
		t.Fatalf("memory table = %+v", got)
	}
}
