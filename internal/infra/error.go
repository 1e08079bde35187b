package infra

import (
	"errors"
	"log/slog"

	"slot-swapper/internal/pkg/errs"
)

// RepositoryErrorKind tells the use case layer what a store failure means for
// the slot or proposal it touched.
type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT"
)

// Expected reports whether the kind is a normal negotiation outcome rather
// than a broken store.
func (k RepositoryErrorKind) Expected() bool {
	return k != KindDBFailure
}

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr defaults to KindDBFailure. Expected kinds are not logged here;
// the caller decides whether a lost CAS or a missing slot is worth a line.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindDBFailure
	if len(kind) > 0 {
		k = kind[0]
	}

	if !k.Expected() {
		attrs := []any{slog.String("kind", string(k))}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		slog.Error("store failure: "+msg, attrs...)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: k, msg: msg, err: err}
}

// KindOf returns the kind of the outermost RepositoryError in the chain, or
// the empty kind when err did not come from a store.
func KindOf(err error) RepositoryErrorKind {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
