package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"

	scierrors "github.com/YuminosukeSato/scistat/pkg/errors"
)

// ErrorContextHandler is a slog handler that expands the ErrAttr value of a
// record into a stack trace plus the error.code and error.type attributes.
type ErrorContextHandler struct {
	next slog.Handler
}

// WithErrorContext wraps next with an ErrorContextHandler.
func WithErrorContext(next slog.Handler) slog.Handler {
	return &ErrorContextHandler{next: next}
}

func (h *ErrorContextHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *ErrorContextHandler) Handle(ctx context.Context, r slog.Record) error {
	var logged error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		logged, _ = attr.Value.Any().(error)
		return false
	})
	if logged == nil {
		return h.next.Handle(ctx, r)
	}

	r.AddAttrs(slog.String(StacktraceAttrKey, stacktraceOf(logged)))
	if code, kind := classify(logged); code != "" {
		r.AddAttrs(slog.String(ErrorCodeKey, code), slog.String(ErrorTypeKey, kind))
	}
	return h.next.Handle(ctx, r)
}

func (h *ErrorContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrorContextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ErrorContextHandler) WithGroup(g string) slog.Handler {
	return &ErrorContextHandler{next: h.next.WithGroup(g)}
}

// ErrorCode maps an error returned by scistat to one of the Error* codes,
// or "" when it is not one of ours.
func ErrorCode(err error) string {
	code, _ := classify(err)
	return code
}

// classify returns the code and the concrete type name of the outermost
// scistat error in err's chain.
// 退化入力は原因(空入力など)を包むので先に判定する
func classify(err error) (code, kind string) {
	var (
		degenerate   *scierrors.DegenerateInputError
		notFitted    *scierrors.NotFittedError
		empty        *scierrors.EmptyInputError
		insufficient *scierrors.InsufficientDataError
		divZero      *scierrors.DivisionByZeroError
		dimension    *scierrors.DimensionError
	)
	switch {
	case err == nil:
		return "", ""
	case scierrors.As(err, &degenerate):
		return ErrorDegenerate, "DegenerateInputError"
	case scierrors.As(err, &notFitted):
		return ErrorNotFitted, "NotFittedError"
	case scierrors.As(err, &empty):
		return ErrorEmptyData, "EmptyInputError"
	case scierrors.As(err, &insufficient):
		return ErrorInsufficientData, "InsufficientDataError"
	case scierrors.As(err, &divZero):
		return ErrorDivisionByZero, "DivisionByZeroError"
	case scierrors.As(err, &dimension):
		return ErrorDimensionMismatch, "DimensionError"
	}
	return "", ""
}

func stacktraceOf(err error) string {
	if details := errors.GetSafeDetails(err).SafeDetails; len(details) > 0 {
		return details[0]
	}
	return fmt.Sprintf("%+v", err)
}
