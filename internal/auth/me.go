package auth

import (
	"context"
)

type MeInput struct {
	AuthInput
}

type MeOutput struct {
	Body struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
		IsAdmin  bool   `json:"is_admin"`
	}
}

func (s *Service) HandleMe(ctx context.Context, input *MeInput) (*MeOutput, error) {
	user, err := s.CurrentUser(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	res := &MeOutput{}
	res.Body.ID = user.ID
	res.Body.Username = user.Username
	res.Body.Email = user.Email
	res.Body.Avatar = user.Avatar
	res.Body.IsAdmin = s.IsAdmin(user.Email)
	return res, nil
}
