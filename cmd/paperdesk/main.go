package main

import (
	"log"

	"github.com/paperdesk/paperdesk/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ paperdesk failed to start: %v", err)
	}
}
