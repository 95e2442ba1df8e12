package response

import (
	"time"

	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type RequestResponse struct {
	ID          int64             `json:"id"`
	Description string            `json:"description"`
	Created     time.Time         `json:"created"`
	Items       []ItemRefResponse `json:"items"`
}

func FromRequestView(view *queries.RequestView) *RequestResponse {
	var resp RequestResponse
	_ = copier.Copy(&resp, view)
	if resp.Items == nil {
		resp.Items = []ItemRefResponse{}
	}
	return &resp
}

func FromRequestViews(views []queries.RequestView) []RequestResponse {
	resps := make([]RequestResponse, 0, len(views))
	for i := range views {
		resps = append(resps, *FromRequestView(&views[i]))
	}
	return resps
}
