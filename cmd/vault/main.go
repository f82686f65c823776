package main

import (
	"context"
	"log"

	"github.com/dsmelov/passvault/internal/cli"
)

func main() {

	ctx := context.Background()

	if err := cli.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
