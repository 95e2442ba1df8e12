package response

import (
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func FromUserView(view *queries.UserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromUserViews(views []queries.UserView) []UserResponse {
	resps := make([]UserResponse, 0, len(views))
	for i := range views {
		resps = append(resps, *FromUserView(&views[i]))
	}
	return resps
}
