package main

import (
	"log"

	riskd "caucion/services/riskd"
)

func main() {
	if err := riskd.Main(); err != nil {
		log.Fatalf("riskd: %v", err)
	}
}
