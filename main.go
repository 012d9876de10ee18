package main

import (
	"log"
	"os"

	"hotel-booking/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
