package main

import (
	"log"

	"github.com/veldrane/inkmark/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
