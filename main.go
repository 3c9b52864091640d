package main

import (
	"log"

	"github.com/sahilchouksey/task-manager-api/app"
)

func main() {
	// setup and run app
	err := app.SetupAndRunServer()
	if err != nil {
		log.Fatal(err)
	}
}
