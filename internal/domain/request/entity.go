package request

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyDescription = errors.New("empty request description")

// Request is a wishlist entry: a user describes an item they would like to
// borrow, other users may answer by listing a matching item.
type Request struct {
	id          int64
	requestorID int64
	description string
	createdAt   time.Time
}

func NewRequest(requestorID int64, description string) (*Request, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	return &Request{requestorID: requestorID, description: description}, nil
}

func ReconstructRequest(id, requestorID int64, description string, createdAt time.Time) *Request {
	return &Request{
		id:          id,
		requestorID: requestorID,
		description: description,
		createdAt:   createdAt,
	}
}

func (r *Request) ID() int64           { return r.id }
func (r *Request) RequestorID() int64  { return r.requestorID }
func (r *Request) Description() string { return r.description }
func (r *Request) CreatedAt() time.Time { return r.createdAt }
