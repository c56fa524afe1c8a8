package sqlite

import (
	"errors"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/npillmayer/pali"
	"github.com/npillmayer/pali/dal"
	"github.com/npillmayer/pali/script"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const schema = `
CREATE TABLE inflections (word TEXT, stem TEXT, n INTEGER);
INSERT INTO inflections VALUES ('ñāṇa', 'ñāṇ', 1);
INSERT INTO inflections VALUES ('buddho', 'buddh', 2);
INSERT INTO inflections VALUES ('ārāma', 'ārām', 3);
INSERT INTO inflections VALUES ('saṃgha', 'saṃgh', 4);
INSERT INTO inflections VALUES ('khandha', 'khandh', 5);
INSERT INTO inflections VALUES ('kamma', 'kamm', NULL);
`

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("cannot open in-memory database: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	svc, _ := dal.New(s)
	if _, err := svc.ExecuteStatements(schema); err != nil {
		t.Fatalf("cannot create schema: %v", err)
	}
	return s
}

func column(t *testing.T, table dal.Table) []string {
	t.Helper()
	col := make([]string, len(table))
	for i, row := range table {
		col[i] = dal.CellText(row[0])
	}
	return col
}

func TestOrderByPaliCollation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pali.sqlite")
	defer teardown()
	//
	s := openTestStore(t)
	table, err := s.Execute("SELECT word FROM inflections ORDER BY word COLLATE PALI")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ārāma", "kamma", "khandha", "ñāṇa", "buddho", "saṃgha"}
	if got := column(t, table); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected Pāli order %v, got %v", want, got)
	}
	words := column(t, table)
	if !pali.Less(words[0], words[1]) {
		t.Fatalf("collation disagrees with pali.Less")
	}
}

func TestPaliFunctions(t *testing.T) {
	s := openTestStore(t)
	table, err := s.Execute("SELECT pali_length(word), pali_length(NULL) FROM inflections WHERE n = 5")
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 1 || table[0][0] != int64(5) || table[0][1] != nil {
		t.Fatalf("unexpected pali_length result %s", spew.Sdump(table))
	}
	table, err = s.Execute("SELECT word FROM inflections ORDER BY pali_sortkey(word)")
	if err != nil {
		t.Fatal(err)
	}
	byCollation, _ := s.Execute("SELECT word FROM inflections ORDER BY word COLLATE PALI")
	if !reflect.DeepEqual(column(t, table), column(t, byCollation)) {
		t.Fatalf("sort key order differs from collation order: %v", column(t, table))
	}
}

func TestServiceOverStore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pali.dal")
	defer teardown()
	//
	s := openTestStore(t)
	conv, err := script.ForScript("devanagari")
	if err != nil {
		t.Fatal(err)
	}
	svc, _ := dal.New(s, dal.WithTransliterator(conv))
	tables, err := svc.ExecuteStatementsWithTransliteration(
		"SELECT word, n FROM inflections WHERE n = 2; SELECT stem, n FROM inflections WHERE n IS NULL")
	if err != nil {
		t.Fatal(err)
	}
	want := []dal.Table{
		{{"बुद्धो", "2"}},
		{{"कम्म्", ""}},
	}
	if !reflect.DeepEqual(tables, want) {
		t.Fatalf("unexpected result %s", spew.Sdump(tables))
	}
	tables, err = svc.ExecuteStatements("SELECT n FROM inflections WHERE n = 1; SELEC x; SELECT 1")
	var serr *dal.StatementError
	if !errors.As(err, &serr) || serr.Index != 1 {
		t.Fatalf("expected failure of the second statement, got %v", err)
	}
	if len(tables) != 1 || tables[0][0][0] != int64(1) {
		t.Fatalf("expected partial result, got %s", spew.Sdump(tables))
	}
}

func TestCheckVersion(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.CheckVersion(); err == nil {
		t.Fatalf("database without _version table should be rejected")
	}
	svc, _ := dal.New(s)
	_, err := svc.ExecuteStatements(`
		CREATE TABLE _version (commit_id TEXT, stamp TEXT, repository TEXT);
		INSERT INTO _version VALUES ('0123456789abcdef0123456789abcdef01234567',
			'2021-03-01', 'digitalpalitools/inflection-generator');`)
	if err != nil {
		t.Fatal(err)
	}
	v, err := s.CheckVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v.Repository != "digitalpalitools/inflection-generator" || v.Stamp != "2021-03-01" {
		t.Fatalf("unexpected version info %s", spew.Sdump(v))
	}
	if v.String() != "https://github.com/digitalpalitools/inflection-generator#0123456789" {
		t.Fatalf("unexpected version string %q", v.String())
	}
	if _, err := svc.ExecuteStatements("INSERT INTO _version VALUES ('x', 'y', 'z')"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CheckVersion(); !errors.Is(err, ErrInvalidDatabase) {
		t.Fatalf("two version rows should be rejected, got %v", err)
	}
}

func TestVersionOf(t *testing.T) {
	good := "0123456789ABCDEF0123456789abcdef01234567"
	tests := []struct {
		table dal.Table
		ok    bool
	}{
		{dal.Table{{good, "stamp", "repo"}}, true},
		{dal.Table{{good, nil, "repo"}}, true},
		{dal.Table{{good, "stamp", ""}}, false},
		{dal.Table{{"0123", "stamp", "repo"}}, false},
		{dal.Table{{good[:39] + "g", "stamp", "repo"}}, false},
		{dal.Table{{good, "stamp"}}, false},
		{dal.Table{}, false},
	}
	for i, tt := range tests {
		_, err := versionOf(tt.table)
		if (err == nil) != tt.ok {
			t.Fatalf("case %d: expected ok=%v, got %v", i, tt.ok, err)
		}
	}
}
