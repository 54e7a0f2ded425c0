package apperrors

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind names the entity a failed lookup was for.
type Kind string

const (
	KindOrder    Kind = "Order"
	KindProduct  Kind = "Product"
	KindProducts Kind = "Products"
	KindAccount  Kind = "Account"
	KindAddress  Kind = "Address"
)

// ResourceNotFoundError reports a missing locally-owned entity.
type ResourceNotFoundError struct {
	Kind Kind
	ID   int64
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s(%d) not found", e.Kind, e.ID)
}

// NewResourceNotFound creates a ResourceNotFoundError.
func NewResourceNotFound(kind Kind, id int64) error {
	return &ResourceNotFoundError{Kind: kind, ID: id}
}

// ReferenceNotFoundError reports missing referenced entities. For
// externally-replicated references (destination accounts) the row may simply
// not have been replicated yet; the caller decides whether to retry. IDs
// carries the full missing set, reported together.
type ReferenceNotFoundError struct {
	Kind Kind
	IDs  []int64
}

func (e *ReferenceNotFoundError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatInt(id, 10)
	}

	return fmt.Sprintf("%s(%s) not found", e.Kind, strings.Join(ids, ", "))
}

// NewReferenceNotFound creates a ReferenceNotFoundError.
func NewReferenceNotFound(kind Kind, ids ...int64) error {
	return &ReferenceNotFoundError{Kind: kind, IDs: ids}
}

// InvalidArgumentError reports a request rejected before any store access.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}

// NewInvalidArgument creates an InvalidArgumentError.
func NewInvalidArgument(reason string) error {
	return &InvalidArgumentError{Reason: reason}
}
