// Copyright 2021 - 2022 Granite Data
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package moerr

import (
	"context"
	"fmt"
)

const MySQLDefaultSqlState = "HY000"

const (
	// 0 - 99 is OK.  They do not contain info and are handled with
	// static instances, no alloc.
	Ok uint16 = 0

	OkMax uint16 = 99

	// Group 1: Internal errors
	ErrStart        uint16 = 20100
	ErrInternal     uint16 = 20101
	ErrNYI          uint16 = 20102
	ErrNotSupported uint16 = 20103

	// Group 2: numeric and functions
	ErrDivByZero  uint16 = 20200
	ErrOutOfRange uint16 = 20201
	ErrInvalidArg uint16 = 20203

	// Group 3: invalid input
	ErrBadConfig    uint16 = 20300
	ErrInvalidInput uint16 = 20301

	// Group 4: unexpected state
	ErrInvalidState uint16 = 20400
	ErrEmptyVector  uint16 = 20404
	ErrTypeMismatch uint16 = 20405

	// Group End: max value of the error code space.
	ErrEnd uint16 = 65535
)

type moErrorMsgItem struct {
	mysqlCode        uint16
	sqlStates        []string
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]moErrorMsgItem{
	ErrInternal:     {errUnknownError, []string{MySQLDefaultSqlState}, "internal error: %s"},
	ErrNYI:          {errUnknownError, []string{MySQLDefaultSqlState}, "%s is not yet implemented"},
	ErrNotSupported: {errUnknownError, []string{MySQLDefaultSqlState}, "%s is not supported"},

	ErrDivByZero:  {errDivisionByZero, []string{"22012"}, "division by zero"},
	ErrOutOfRange: {errDataOutOfRange, []string{"22003"}, "data out of range: data type %s, %s"},
	ErrInvalidArg: {errWrongArguments, []string{MySQLDefaultSqlState}, "invalid argument %s, bad value %s"},

	ErrBadConfig:    {errUnknownError, []string{MySQLDefaultSqlState}, "invalid configuration: %s"},
	ErrInvalidInput: {errUnknownError, []string{MySQLDefaultSqlState}, "invalid input: %s"},

	ErrInvalidState: {errUnknownError, []string{MySQLDefaultSqlState}, "invalid state %s"},
	ErrEmptyVector:  {errUnknownError, []string{MySQLDefaultSqlState}, "empty vector"},
	ErrTypeMismatch: {errUnknownError, []string{MySQLDefaultSqlState}, "vector type mismatch: expected %s, got %s"},

	ErrEnd: {errUnknownError, []string{MySQLDefaultSqlState}, "internal error: end of errcode code"},
}

// mysql compatible error numbers for the codes above.
const (
	errUnknownError   uint16 = 1105
	errDivisionByZero uint16 = 1365
	errDataOutOfRange uint16 = 3688
	errWrongArguments uint16 = 1210
)

func newError(ctx context.Context, code uint16, args ...any) *Error {
	var err *Error
	item, has := errorMsgRefer[code]
	if !has {
		panic(fmt.Errorf("not exist error code: %d", code))
	}
	if len(args) == 0 {
		err = &Error{
			code:      code,
			mysqlCode: item.mysqlCode,
			message:   item.errorMsgOrFormat,
			sqlState:  item.sqlStates[0],
		}
	} else {
		err = &Error{
			code:      code,
			mysqlCode: item.mysqlCode,
			message:   fmt.Sprintf(item.errorMsgOrFormat, args...),
			sqlState:  item.sqlStates[0],
		}
	}
	_ = ctx
	return err
}

type Error struct {
	code      uint16
	mysqlCode uint16
	message   string
	sqlState  string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) MySQLCode() uint16 {
	return e.mysqlCode
}

func (e *Error) SqlState() string {
	return e.sqlState
}

func (e *Error) Succeeded() bool {
	return e.code < OkMax
}

// Is implements the errors.Is protocol: two moerrs match when their
// codes match.
func (e *Error) Is(err error) bool {
	me, ok := err.(*Error)
	return ok && me.code == e.code
}

func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}
	me, ok := e.(*Error)
	if !ok {
		// This is not a moerr
		return false
	}
	return me.code == rc
}

// ConvertGoError converts a go error into a moerr.
// Note here we must return error, because nil error
// is the same as nil *Error -- Go strangeness.
func ConvertGoError(ctx context.Context, err error) error {
	// nil is nil
	if err == nil {
		return err
	}
	// already a moerr, return it as is
	if _, ok := err.(*Error); ok {
		return err
	}
	return NewInternalError(ctx, "convert go error to mo error %v", err)
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInternal, fmt.Sprintf(msg, args...))
}

func NewInternalErrorNoCtx(msg string, args ...any) *Error {
	return NewInternalError(Context(), msg, args...)
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrNYI, fmt.Sprintf(msg, args...))
}

func NewNYINoCtx(msg string, args ...any) *Error {
	return NewNYI(Context(), msg, args...)
}

func NewNotSupported(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrNotSupported, fmt.Sprintf(msg, args...))
}

func NewNotSupportedNoCtx(msg string, args ...any) *Error {
	return NewNotSupported(Context(), msg, args...)
}

func NewDivByZero(ctx context.Context) *Error {
	return newError(ctx, ErrDivByZero)
}

func NewOutOfRange(ctx context.Context, typ string, msg string, args ...any) *Error {
	return newError(ctx, ErrOutOfRange, typ, fmt.Sprintf(msg, args...))
}

func NewOutOfRangeNoCtx(typ string, msg string, args ...any) *Error {
	return NewOutOfRange(Context(), typ, msg, args...)
}

func NewInvalidArg(ctx context.Context, arg string, val any) *Error {
	return newError(ctx, ErrInvalidArg, arg, fmt.Sprintf("%v", val))
}

func NewInvalidArgNoCtx(arg string, val any) *Error {
	return NewInvalidArg(Context(), arg, val)
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrBadConfig, fmt.Sprintf(msg, args...))
}

func NewBadConfigNoCtx(msg string, args ...any) *Error {
	return NewBadConfig(Context(), msg, args...)
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInvalidInput, fmt.Sprintf(msg, args...))
}

func NewInvalidInputNoCtx(msg string, args ...any) *Error {
	return NewInvalidInput(Context(), msg, args...)
}

func NewInvalidState(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInvalidState, fmt.Sprintf(msg, args...))
}

func NewInvalidStateNoCtx(msg string, args ...any) *Error {
	return NewInvalidState(Context(), msg, args...)
}

func NewEmptyVector(ctx context.Context) *Error {
	return newError(ctx, ErrEmptyVector)
}

func NewTypeMismatch(ctx context.Context, expected, got string) *Error {
	return newError(ctx, ErrTypeMismatch, expected, got)
}

func NewTypeMismatchNoCtx(expected, got string) *Error {
	return NewTypeMismatch(Context(), expected, got)
}

// Context returns the default background context used by the NoCtx
// constructors.
func Context() context.Context {
	return context.Background()
}
