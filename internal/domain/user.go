package domain

import (
	"math/rand/v2"
	"time"
)

type UserColor string

const (
	ColorQueenBlue            UserColor = "#33658A"
	ColorDarkSkyBlue          UserColor = "#86BBD8"
	ColorMossGreen            UserColor = "#758E4F"
	ColorHoneyYellow          UserColor = "#F6AE2D"
	ColorSafetyOrange         UserColor = "#F26419"
	ColorDarkPurple           UserColor = "#160F29"
	ColorChampagne            UserColor = "#F3DFC1"
	ColorDesertSand           UserColor = "#DDBEA8"
	ColorLightGoldenrodYellow UserColor = "#FAFFD8"
	ColorPastelPink           UserColor = "#D6A2AD"
)

// UserColors is the palette a new user's display color is drawn from.
var UserColors = []UserColor{
	ColorQueenBlue,
	ColorDarkSkyBlue,
	ColorMossGreen,
	ColorHoneyYellow,
	ColorSafetyOrange,
	ColorDarkPurple,
	ColorChampagne,
	ColorDesertSand,
	ColorLightGoldenrodYellow,
	ColorPastelPink,
}

func RandomUserColor() UserColor {
	return UserColors[rand.IntN(len(UserColors))]
}

type User struct {
	ID                 uint      `json:"id"`
	Email              string    `json:"email"`
	Password           string    `json:"-"`
	Name               string    `json:"name"`
	LastName           string    `json:"lastName"`
	Color              UserColor `json:"color"`
	PasswordResetToken *string   `json:"-"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
}

// UserOption is the public projection used by user pickers; it never carries the email.
type UserOption struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	LastName string    `json:"lastName"`
	Color    UserColor `json:"color"`
}

func (u User) Option() UserOption {
	return UserOption{
		ID:       u.ID,
		Name:     u.Name,
		LastName: u.LastName,
		Color:    u.Color,
	}
}
