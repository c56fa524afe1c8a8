package dal

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// QueryExecutor executes a single SQL statement.
type QueryExecutor interface {
	Execute(statement string) (Table, error)
}

// ExecutorFunc adapts a function to a QueryExecutor.
type ExecutorFunc func(statement string) (Table, error)

// Execute calls f(statement).
func (f ExecutorFunc) Execute(statement string) (Table, error) {
	return f(statement)
}

// Transliterator renders text in a display script.
// *script.Converter implements it.
type Transliterator interface {
	Convert(text string) string
	TransliterateFromRoman(text string) string
}

// ErrConversionUnavailable is returned by the transliterating entry point of
// a Service created without a Transliterator.
var ErrConversionUnavailable = errors.New("script conversion is not available")

// ErrNoExecutor is returned when creating a Service without a QueryExecutor.
var ErrNoExecutor = errors.New("no query executor")

// StatementError reports a statement rejected by the store. Index is the
// 0-based position of the statement within its batch.
type StatementError struct {
	Index     int
	Statement string
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement #%d %q failed: %v", e.Index+1, e.Statement, e.Err)
}

// Unwrap returns the error reported by the store.
func (e *StatementError) Unwrap() error { return e.Err }

// Cause returns the error reported by the store (github.com/pkg/errors).
func (e *StatementError) Cause() error { return e.Err }

// Service executes batches of statements, see package documentation.
type Service struct {
	executor QueryExecutor
	translit Transliterator
}

// Option configures a Service.
type Option func(*Service)

// WithTransliterator selects the script conversion used by
// ExecuteStatementsWithTransliteration.
func WithTransliterator(t Transliterator) Option {
	return func(s *Service) {
		s.translit = t
	}
}

// New creates a Service running statements on executor.
func New(executor QueryExecutor, opts ...Option) (*Service, error) {
	if executor == nil {
		return nil, ErrNoExecutor
	}
	s := &Service{executor: executor}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CanTransliterate reports whether s has been configured with a
// Transliterator.
func (s *Service) CanTransliterate() bool {
	return s.translit != nil
}

// ExecuteStatements runs the statements of sql one after the other and
// returns their results as they come from the store.
//
// If a statement fails, the tables of all preceding statements are returned
// together with a *StatementError; the remaining statements are not
// executed.
func (s *Service) ExecuteStatements(sql string) ([]Table, error) {
	return s.run(sql, nil)
}

// ExecuteStatementsWithTransliteration is like ExecuteStatements, but every
// cell is returned as a string. Text cells are rendered in the display
// script; numbers and NULL are formatted with CellText and not converted.
func (s *Service) ExecuteStatementsWithTransliteration(sql string) ([]Table, error) {
	if s.translit == nil {
		return nil, ErrConversionUnavailable
	}
	return s.run(sql, func(v any) any {
		if isText(v) {
			return s.translit.Convert(CellText(v))
		}
		return CellText(v)
	})
}

func (s *Service) run(sql string, transform func(any) any) ([]Table, error) {
	reader := NewStatementReader(strings.NewReader(sql))
	var tables []Table
	for i := 0; ; i++ {
		stmt, err := reader.Next()
		if err == io.EOF {
			return tables, nil
		} else if err != nil {
			return tables, errors.Wrap(err, "reading statements")
		}
		tracer().Debugf("executing statement #%d: %s", i+1, stmt)
		table, err := s.executor.Execute(stmt)
		if err != nil {
			tracer().Errorf("statement #%d failed: %v", i+1, err)
			return tables, &StatementError{Index: i, Statement: stmt, Err: err}
		}
		if transform != nil {
			table = transformCells(table, transform)
		}
		tables = append(tables, table)
	}
}

func transformCells(t Table, transform func(any) any) Table {
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = make(Row, len(row))
		for j, cell := range row {
			out[i][j] = transform(cell)
		}
	}
	return out
}
