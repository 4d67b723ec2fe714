package main

import (
	"log"

	"aquacal/backend/api"
	"aquacal/backend/data"
	"aquacal/backend/messaging"
	"aquacal/backend/settings"
)

func main() {
	cfg := settings.Load()

	if err := data.InitDatabase(cfg.DatabasePath); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if cfg.ChatMode {
		log.Println("Running with chat interface")
		messaging.InitBroadcaster(true)
		handler := api.NewChatHandler()
		handler.Start()
	} else {
		log.Println("Running with REST API interface")
		messaging.InitBroadcaster(false)
		router := api.NewRouter()
		router.SetupAndRunApiServer(cfg.Port)
	}
}
