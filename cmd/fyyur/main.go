package main

import (
	"log"

	"github.com/farellandr/fyyur/config"
	"github.com/farellandr/fyyur/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment")
	}

	if err := server.Start(config.AppFyyur); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
