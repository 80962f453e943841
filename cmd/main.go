package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/debatecast/debatecast/pkg/artifact"
	"github.com/debatecast/debatecast/pkg/audio"
	"github.com/debatecast/debatecast/pkg/config"
	"github.com/debatecast/debatecast/pkg/debate"
	"github.com/debatecast/debatecast/pkg/llm"
	"github.com/debatecast/debatecast/pkg/persona"
	"github.com/debatecast/debatecast/pkg/server"
	"github.com/debatecast/debatecast/pkg/trace"
	"github.com/debatecast/debatecast/pkg/tts"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := trace.Initialize(ctx, trace.DefaultConfig()); err != nil {
		log.Fatal(err)
	}
	defer trace.Shutdown(context.Background())

	personas, err := persona.NewFileStore(cfg.PersonaFile)
	if err != nil {
		log.Fatal(err)
	}

	artifacts, err := artifact.NewStore(cfg.ArtifactDir)
	if err != nil {
		log.Fatal(err)
	}

	var synthesizer tts.Provider
	switch cfg.TTSBackend {
	case config.TTSBackendBark:
		synthesizer = tts.NewBarkProvider(cfg.BarkServerURL)
	default:
		synthesizer = tts.NewOpenAIProvider(cfg.OpenAIAPIKey, audio.NewTranscoder(cfg.FFmpegPath))
	}
	if err := synthesizer.ValidateConfig(); err != nil {
		log.Fatal(err)
	}
	log.Printf("[Main] TTS backend: %s", synthesizer.Name())

	openaiRuntime, err := llm.NewOpenAIRuntime(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.LLMMaxTokens)
	if err != nil {
		log.Fatal(err)
	}
	var geminiRuntime llm.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := llm.NewGeminiRuntime(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatal(err)
		}
		geminiRuntime = g
	}
	generator := llm.NewRuntimes(openaiRuntime, geminiRuntime)

	engine := debate.NewEngine(
		personas,
		generator,
		synthesizer,
		artifacts,
		audio.NewConcatenator(cfg.FFmpegPath),
	)

	srv := server.New(cfg, engine, personas, artifacts)
	if err := srv.Start(ctx); err != nil {
		log.Fatal(err)
	}
}
