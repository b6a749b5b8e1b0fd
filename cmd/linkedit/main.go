package main

import (
	"log"
	"os"
)

func main() {
	if err := newCLIApp().Run(os.Args); err != nil {
		log.Fatalf("❌ linkedit failed: %v", err)
	}
}
