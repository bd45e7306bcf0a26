package main

import (
	"log"

	"github.com/Lokavishruth/siftclub/config"
	"github.com/Lokavishruth/siftclub/controllers"
	"github.com/Lokavishruth/siftclub/routes"
	"github.com/Lokavishruth/siftclub/services"
)

func main() {
	cfg := config.Load()

	// External clients are stateless; build the whole graph once and share
	// it across requests.
	catalog := services.NewOpenFoodFactsService(cfg.CatalogBaseURL)
	recognition := services.NewRecognitionService(cfg.RecognitionEndpoint)
	ai := services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	scans := services.NewScanService(catalog, recognition, ai)

	r := routes.SetupRouter(cfg, controllers.NewChatController(ai), controllers.NewScanController(scans))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
