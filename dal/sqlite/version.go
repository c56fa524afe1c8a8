package sqlite

import (
	"fmt"

	"github.com/npillmayer/pali/dal"
	"github.com/pkg/errors"
)

// VersionInfo identifies the generator build which produced a database of
// inflected forms. It is stored as the single row of table _version.
type VersionInfo struct {
	CommitID   string
	Stamp      string
	Repository string
}

// ErrInvalidDatabase is reported when a database does not carry valid
// version information.
var ErrInvalidDatabase = errors.New("invalid inflection database")

func (v VersionInfo) String() string {
	return fmt.Sprintf("https://github.com/%s#%s", v.Repository, v.CommitID[:10])
}

// CheckVersion reads the version information of the database.
func (s *Store) CheckVersion() (VersionInfo, error) {
	table, err := s.Execute("SELECT * FROM _version")
	if err != nil {
		tracer().Errorf("unable to load inflection database %s: %v", s.path, err)
		return VersionInfo{}, errors.Wrap(err, "unable to load inflection database")
	}
	v, err := versionOf(table)
	if err != nil {
		tracer().Errorf("%v", err)
		return VersionInfo{}, err
	}
	tracer().Infof("loaded inflection database version %s", v)
	return v, nil
}

func versionOf(table dal.Table) (VersionInfo, error) {
	if len(table) != 1 || len(table[0]) != 3 {
		return VersionInfo{}, errors.Wrap(ErrInvalidDatabase, "unexpected data in _version table")
	}
	row := table[0]
	v := VersionInfo{
		CommitID:   dal.CellText(row[0]),
		Stamp:      dal.CellText(row[1]),
		Repository: dal.CellText(row[2]),
	}
	if !isCommitID(v.CommitID) || v.Repository == "" {
		return VersionInfo{}, errors.Wrapf(ErrInvalidDatabase, "commit id %q, repository %q",
			v.CommitID, v.Repository)
	}
	return v, nil
}

func isCommitID(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range []byte(s) {
		switch {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}
