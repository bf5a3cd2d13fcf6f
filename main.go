package main

import (
	"log"

	"github.com/Charvi99/StockAnalyzer-sub001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("could not start application: %v", err)
	}
}
