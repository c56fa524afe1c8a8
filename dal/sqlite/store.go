/*
Package sqlite provides a dal.QueryExecutor backed by an SQLite database of
inflected word forms.

Opening a store registers, once per process, the collation PALI and the
functions pali_length(text) and pali_sortkey(text) with the SQLite driver.
They make Pāli alphabetical order available in SQL:

	SELECT word FROM inflections ORDER BY word COLLATE PALI;
	SELECT pali_length(word) FROM inflections;

A Store keeps a single connection to its database, so statements are
serialized by the driver.
*/
package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"net/url"
	"sync"

	"github.com/npillmayer/pali"
	"github.com/npillmayer/pali/dal"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
)

// tracer writes to trace with key 'pali.sqlite'
func tracer() tracing.Trace {
	return tracing.Select("pali.sqlite")
}

// CollationName is the name of the Pāli collation in SQL.
const CollationName = "PALI"

var registration struct {
	once sync.Once
	err  error
}

// register makes the Pāli collation and functions known to the driver. It
// has to happen before the first connection is opened.
func register() error {
	registration.once.Do(func() {
		err := sqlite.RegisterCollationUtf8(CollationName, pali.Compare)
		if err == nil {
			err = sqlite.RegisterDeterministicScalarFunction("pali_length", 1, paliLength)
		}
		if err == nil {
			err = sqlite.RegisterDeterministicScalarFunction("pali_sortkey", 1, paliSortKey)
		}
		registration.err = errors.Wrap(err, "registering Pāli SQL extensions")
	})
	return registration.err
}

func paliLength(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if args[0] == nil {
		return nil, nil
	}
	return int64(pali.Length(dal.CellText(args[0]))), nil
}

func paliSortKey(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if args[0] == nil {
		return nil, nil
	}
	return pali.SortKey(dal.CellText(args[0])), nil
}

// Store executes statements on an SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Option configures the connection of a Store.
type Option func(url.Values)

// WithPragma executes "PRAGMA name = value" on the connection.
func WithPragma(name, value string) Option {
	return func(q url.Values) {
		q.Add("_pragma", name+"("+value+")")
	}
}

// ReadOnly opens the database for reading only.
func ReadOnly() Option {
	return WithPragma("query_only", "1")
}

// Open opens the database at path. Use ":memory:" for a private in-memory
// database.
func Open(path string, opts ...Option) (*Store, error) {
	if err := register(); err != nil {
		return nil, err
	}
	q := url.Values{}
	for _, opt := range opts {
		opt(q)
	}
	dsn := path
	if len(q) > 0 {
		dsn += "?" + q.Encode()
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening database %s", path)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "opening database %s", path)
	}
	tracer().Infof("opened database %s", path)
	return &Store{db: db, path: path}, nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Execute runs a single statement and returns all of its result rows.
// Statements which do not produce rows return an empty table.
func (s *Store) Execute(statement string) (dal.Table, error) {
	rows, err := s.db.Query(statement)
	if err != nil {
		return nil, errors.Wrap(err, "executing statement")
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "reading result columns")
	}
	table := dal.Table{}
	for rows.Next() {
		row := make(dal.Row, len(cols))
		ptrs := make([]any, len(cols))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, "reading result row")
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading result rows")
	}
	return table, nil
}
