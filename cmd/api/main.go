package main

import (
	"context"
	"log"

	"github.com/Apurer/go-gin-adoption-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("adoption API exited: %v", err)
	}
}
