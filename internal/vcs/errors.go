package vcs

import (
	"errors"
	"fmt"
)

// Class identifies the subsystem an error originated from.
type Class int

const (
	ClassNone Class = iota
	ClassRepository
	ClassIndex
	ClassConfig
	ClassObject
)

func (c Class) String() string {
	switch c {
	case ClassRepository:
		return "repository"
	case ClassIndex:
		return "index"
	case ClassConfig:
		return "config"
	case ClassObject:
		return "object"
	default:
		return "none"
	}
}

// Code narrows down what went wrong within a Class.
type Code int

const (
	CodeGeneric Code = iota
	CodeNotFound
	CodeExists
)

func (c Code) String() string {
	switch c {
	case CodeNotFound:
		return "not found"
	case CodeExists:
		return "exists"
	default:
		return "generic"
	}
}

// Error is a classified version-control failure.
type Error struct {
	Op    string
	Class Class
	Code  Code
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrIdentityMissing is wrapped when no author name or email is configured.
var ErrIdentityMissing = errors.New("author identity unknown: user.name and user.email are not configured")

// IsIdentityMissing reports whether err means no author identity is configured.
func IsIdentityMissing(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Class == ClassConfig && e.Code == CodeNotFound
}

// Classify extracts the class and code of err. Unclassified errors report
// ClassNone and CodeGeneric.
func Classify(err error) (Class, Code) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, e.Code
	}
	return ClassNone, CodeGeneric
}
