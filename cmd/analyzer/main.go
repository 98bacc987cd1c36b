package main

import (
	"flag"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/nuitfeedback/internal/app"
	"github.com/shrimpsizemoose/nuitfeedback/internal/handlers"
	"github.com/shrimpsizemoose/nuitfeedback/internal/sentiment"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	policy, err := sentiment.PolicyByName(config.Analyzer.Policy)
	if err != nil {
		logger.Error.Fatalf("Unknown analyzer policy: %v", err)
	}
	if config.Analyzer.Policy == sentiment.PolicyMaxOfFirstThree {
		logger.Info.Println("Policy max_of_first_three ignores the compound score and usually picks neu; prefer compound")
	}

	analyzer := sentiment.NewLexiconAnalyzer(sentiment.NewVaderScorer(), policy)
	router := handlers.NewAnalyzerRouter(handlers.NewAnalyzeHandler(analyzer, config.Analyzer.Policy))

	logger.Info.Printf("Starting sentiment analyzer on %s with policy %s", config.Analyzer.Port, config.Analyzer.Policy)
	if err := http.ListenAndServe(config.Analyzer.Port, router); err != nil {
		logger.Error.Fatalf("Analyzer failed: %v", err)
	}
}
