package response

import (
	"time"

	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemRefResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"userId"`
}

type BookingResponse struct {
	ID     int64           `json:"id"`
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Status string          `json:"status"`
	Booker BookerResponse  `json:"booker"`
	Item   ItemRefResponse `json:"item"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingViews(views []queries.BookingView) []BookingResponse {
	resps := make([]BookingResponse, 0, len(views))
	for i := range views {
		resps = append(resps, *FromBookingView(&views[i]))
	}
	return resps
}
