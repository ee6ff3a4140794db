// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an evaluation error.
type ErrorKind int

const (
	MissingOperand ErrorKind = iota + 1
	UnknownOperator
	ExtraOperands
	DivisionByZero
	InvalidFactorial
	NegativeSqrt
	NonPositiveLog
	InvalidCombinatoric
	ResultTooLarge
	OutOfDomain
	UnsupportedComplex
)

// String returns the name of k.
func (k ErrorKind) String() string {
	switch k {
	case MissingOperand:
		return "MissingOperand"
	case UnknownOperator:
		return "UnknownOperator"
	case ExtraOperands:
		return "ExtraOperands"
	case DivisionByZero:
		return "DivisionByZero"
	case InvalidFactorial:
		return "InvalidFactorial"
	case NegativeSqrt:
		return "NegativeSqrt"
	case NonPositiveLog:
		return "NonPositiveLog"
	case InvalidCombinatoric:
		return "InvalidCombinatoric"
	case ResultTooLarge:
		return "ResultTooLarge"
	case OutOfDomain:
		return "OutOfDomain"
	case UnsupportedComplex:
		return "UnsupportedComplex"
	}
	return "Unknown"
}

// Sentinels for errors.Is.
var (
	ErrMissingOperand      = &Error{Kind: MissingOperand}
	ErrUnknownOperator     = &Error{Kind: UnknownOperator}
	ErrExtraOperands       = &Error{Kind: ExtraOperands}
	ErrDivisionByZero      = &Error{Kind: DivisionByZero}
	ErrInvalidFactorial    = &Error{Kind: InvalidFactorial}
	ErrNegativeSqrt        = &Error{Kind: NegativeSqrt}
	ErrNonPositiveLog      = &Error{Kind: NonPositiveLog}
	ErrInvalidCombinatoric = &Error{Kind: InvalidCombinatoric}
	ErrResultTooLarge      = &Error{Kind: ResultTooLarge}
	ErrOutOfDomain         = &Error{Kind: OutOfDomain}
	ErrUnsupportedComplex  = &Error{Kind: UnsupportedComplex}
)

// Error is a domain error raised while running a postfix program.
type Error struct {
	Kind  ErrorKind
	Token string // offending token, if any
}

// Error implements the error interface with a user-facing message.
func (e *Error) Error() string {
	switch e.Kind {
	case MissingOperand:
		return fmt.Sprintf("missing operand for %s", e.Token)
	case UnknownOperator:
		return fmt.Sprintf("unknown operator %q", e.Token)
	case ExtraOperands:
		return "missing operator"
	case DivisionByZero:
		return "division by zero"
	case InvalidFactorial:
		return "factorial requires a non-negative integer"
	case NegativeSqrt:
		return "square root of a negative number"
	case NonPositiveLog:
		return fmt.Sprintf("%s of a non-positive number", e.Token)
	case InvalidCombinatoric:
		return fmt.Sprintf("%s requires non-negative integers with r <= n", e.Token)
	case ResultTooLarge:
		return "result too large"
	case OutOfDomain:
		return fmt.Sprintf("%s argument out of domain", e.Token)
	case UnsupportedComplex:
		return fmt.Sprintf("%s does not accept complex numbers", e.Token)
	}
	return "evaluation error"
}

// Is matches errors of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func fail(kind ErrorKind, tok string) error {
	return &Error{Kind: kind, Token: tok}
}
