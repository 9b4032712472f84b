// cmd/xsheet/main.go
package main

import (
	"log"

	"github.com/bethropolis/xsheet/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
