package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/vietanh2810/meetup-api/cmd/app"
)

// @title      Meetup API
// @version    1.0
// @BasePath   /
//
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name accessToken
// @description Access token set by /auth/login
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
