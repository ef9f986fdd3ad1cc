package response

import "github.com/vietanh2810/meetup-api/internal/domain"

type User struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Color    string `json:"color"`
}

func NewUser(u domain.User) User {
	return User{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		LastName: u.LastName,
		Color:    string(u.Color),
	}
}

func NewUsers(users []domain.User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, NewUser(u))
	}
	return out
}

type OptionsResponse struct {
	Options []domain.UserOption `json:"options"`
}
