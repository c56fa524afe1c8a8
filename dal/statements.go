package dal

import (
	"bufio"
	"io"
	"strings"
)

// StatementReader streams the statements of a batch of SQL text.
//
// Statements are separated by ';'. Separators inside quoted literals
// ('text', "identifier", `identifier`, [identifier]) and inside comments
// (-- line, /* block */) do not count. Every statement is trimmed, and empty
// statements are skipped, so "SELECT 1; ; SELECT 2;" yields two statements.
type StatementReader struct {
	reader *bufio.Reader
	stmt   strings.Builder
}

// NewStatementReader creates a reader for the SQL text of reader.
func NewStatementReader(reader io.Reader) *StatementReader {
	return &StatementReader{
		reader: bufio.NewReader(reader),
	}
}

// Next returns the next non-empty statement, without its terminating ';'.
// It returns io.EOF when exhausted.
func (r *StatementReader) Next() (string, error) {
	for {
		stmt, err := r.scanStatement()
		if err != nil && err != io.EOF {
			return "", err
		}
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			return stmt, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// scanStatement reads up to and including the next top-level ';'.
func (r *StatementReader) scanStatement() (string, error) {
	r.stmt.Reset()
	var quote rune // closing quote we are waiting for, 0 outside of literals
	for {
		ch, _, err := r.reader.ReadRune()
		if err != nil {
			return r.stmt.String(), err
		}
		switch {
		case quote != 0:
			r.stmt.WriteRune(ch)
			if ch == quote {
				quote = 0 // a doubled quote simply re-opens the literal
			}
			continue
		case ch == ';':
			return r.stmt.String(), nil
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == '[':
			quote = ']'
		case ch == '-' && r.peek('-'):
			if err := r.skipUntil("\n"); err != nil {
				return r.stmt.String(), err
			}
			r.stmt.WriteByte('\n')
			continue
		case ch == '/' && r.peek('*'):
			if err := r.skipUntil("*/"); err != nil {
				return r.stmt.String(), err
			}
			r.stmt.WriteByte(' ')
			continue
		}
		r.stmt.WriteRune(ch)
	}
}

// peek reports whether the next rune is want, and consumes it if so.
func (r *StatementReader) peek(want rune) bool {
	ch, _, err := r.reader.ReadRune()
	if err != nil {
		return false
	}
	if ch != want {
		_ = r.reader.UnreadRune()
		return false
	}
	return true
}

// skipUntil discards input up to and including end.
func (r *StatementReader) skipUntil(end string) error {
	matched := 0
	for matched < len(end) {
		b, err := r.reader.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == end[matched]:
			matched++
		case b == end[0]:
			matched = 1
		default:
			matched = 0
		}
	}
	return nil
}

// SplitStatements returns the non-empty statements of sql.
func SplitStatements(sql string) []string {
	r := NewStatementReader(strings.NewReader(sql))
	var stmts []string
	for {
		stmt, err := r.Next()
		if err != nil {
			return stmts
		}
		stmts = append(stmts, stmt)
	}
}
