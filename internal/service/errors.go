package service

import (
	"errors"
	"fmt"
)

// Kind класс доменной ошибки; по нему транслятор выбирает HTTP-ответ
type Kind int

const (
	KindUnclassified Kind = iota
	KindNotFound
	KindBusinessRuleViolation
	KindMalformedDate
	KindNullArgument
	KindInvalidArgument
	KindNullReference
	KindConcurrencyConflict
	KindWriteFailure
	KindUnimplemented
)

var kindNames = map[Kind]string{
	KindUnclassified:          "UNCLASSIFIED",
	KindNotFound:              "NOT_FOUND",
	KindBusinessRuleViolation: "BUSINESS_RULE_VIOLATION",
	KindMalformedDate:         "MALFORMED_DATE",
	KindNullArgument:          "NULL_ARGUMENT",
	KindInvalidArgument:       "INVALID_ARGUMENT",
	KindNullReference:         "NULL_REFERENCE",
	KindConcurrencyConflict:   "CONCURRENCY_CONFLICT",
	KindWriteFailure:          "WRITE_FAILURE",
	KindUnimplemented:         "UNIMPLEMENTED",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error доменная ошибка. Message уходит клиенту, Err только в лог.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает только Kind: errors.Is(err, &Error{Kind: KindNotFound})
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf достаёт Kind из цепочки; всё, что не *Error, считается неклассифицированным
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

func NewNotFound(format string, args ...any) *Error {
	return newError(KindNotFound, nil, format, args...)
}

func NewBusinessRuleViolation(format string, args ...any) *Error {
	return newError(KindBusinessRuleViolation, nil, format, args...)
}

func NewMalformedDate(err error, format string, args ...any) *Error {
	return newError(KindMalformedDate, err, format, args...)
}

func NewNullArgument(format string, args ...any) *Error {
	return newError(KindNullArgument, nil, format, args...)
}

func NewInvalidArgument(format string, args ...any) *Error {
	return newError(KindInvalidArgument, nil, format, args...)
}

func NewNullReference(format string, args ...any) *Error {
	return newError(KindNullReference, nil, format, args...)
}

func NewConcurrencyConflict(err error, format string, args ...any) *Error {
	return newError(KindConcurrencyConflict, err, format, args...)
}

func NewWriteFailure(err error, format string, args ...any) *Error {
	return newError(KindWriteFailure, err, format, args...)
}

func NewUnimplemented(format string, args ...any) *Error {
	return newError(KindUnimplemented, nil, format, args...)
}

func NewUnclassified(err error, format string, args ...any) *Error {
	return newError(KindUnclassified, err, format, args...)
}
