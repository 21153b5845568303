package main

import (
	"context"
	"log"

	"github.com/retailops/backoffice/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("back-office API failed: %v", err)
	}
}
