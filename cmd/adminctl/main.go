package main

import (
	"log"

	"github.com/flfe/adminctl/internal/client/config"
	"github.com/flfe/adminctl/internal/client/tui"
)

func main() {

	cfg := config.LoadConfig()
	app, err := tui.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(); err != nil {
		log.Fatalf("%v", err)
	}

}
