package response

import (
	"time"

	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingShotResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemResponse struct {
	ID          int64                `json:"id"`
	OwnerID     int64                `json:"userId"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Available   bool                 `json:"available"`
	RequestID   *int64               `json:"requestId,omitempty"`
	LastBooking *BookingShotResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingShotResponse `json:"nextBooking,omitempty"`
	Comments    []CommentResponse    `json:"comments"`
}

func FromItemView(view *queries.ItemView) *ItemResponse {
	var resp ItemResponse
	_ = copier.Copy(&resp, view)
	if resp.Comments == nil {
		resp.Comments = []CommentResponse{}
	}
	return &resp
}

func FromItemViews(views []queries.ItemView) []ItemResponse {
	resps := make([]ItemResponse, 0, len(views))
	for i := range views {
		resps = append(resps, *FromItemView(&views[i]))
	}
	return resps
}

func FromCommentView(view *queries.CommentView) *CommentResponse {
	var resp CommentResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
