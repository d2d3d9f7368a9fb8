package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/ludotek/festival-booking-api/cmd/app"
)

// @contact.name   API Support
// @contact.email  support@ludotek.example
//
// @license.name  MIT
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
