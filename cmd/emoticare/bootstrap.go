package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/emoticare/internal/adapters/driven/ai"
	"github.com/custodia-labs/emoticare/internal/adapters/driven/config/file"
	contentfile "github.com/custodia-labs/emoticare/internal/adapters/driven/content/file"
	"github.com/custodia-labs/emoticare/internal/adapters/driven/speech"
	"github.com/custodia-labs/emoticare/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/emoticare/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/emoticare/internal/adapters/driven/vector/flat"
	"github.com/custodia-labs/emoticare/internal/adapters/driving/cli"
	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
	"github.com/custodia-labs/emoticare/internal/core/services"
	"github.com/custodia-labs/emoticare/internal/logger"
	"github.com/custodia-labs/emoticare/internal/normalisers"
	"github.com/custodia-labs/emoticare/internal/postprocessors"
)

// bootstrap wires adapters into core services. Only cheap services are
// created here; the answer pipeline is built on first use.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, error) {
	dir := opts.ConfigDir
	if dir == "" {
		d, err := file.DefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locating config directory: %w", err)
		}
		dir = d
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	wellness := services.NewWellnessService(
		contentfile.NewQuoteStore(settings.Content.QuotesPath),
		contentfile.NewTipStore(settings.Content.TipsPath),
	)

	speaker, err := speech.NewSpeaker(settings.Speech)
	if err != nil {
		logger.Warn("Speech disabled: %v", err)
		speaker = nil
	}
	voice := services.NewVoiceService(speaker)

	prompts, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
	if err != nil {
		return nil, fmt.Errorf("opening prompts: %w", err)
	}

	answers := &answerBuilder{
		settings:       settings,
		settingsSvc:    settingsService,
		prompts:        prompts,
		defaultDataDir: filepath.Join(dir, "data"),
	}

	return &cli.Services{
		Settings:      settingsService,
		Wellness:      wellness,
		Voice:         voice,
		Answer:        answers.build,
		PromptChanges: prompts.Watch,
		Close: func() {
			voice.Wait()
			answers.close()
		},
	}, nil
}

// answerBuilder builds the pipeline once and owns the resources behind it.
type answerBuilder struct {
	settings       *domain.AppSettings
	settingsSvc    driving.SettingsService
	prompts        driven.PromptStore
	defaultDataDir string

	mu       sync.Mutex
	pipeline *services.Pipeline
	aiRes    *ai.InitResult
	closer   func() error
}

func (b *answerBuilder) build(ctx context.Context) (driving.AnswerService, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipeline != nil {
		return b.pipeline, nil
	}

	aiRes, err := ai.Init(b.settings)
	if err != nil {
		return nil, err
	}

	pc := b.settingsSvc.GetPipelineConfig()
	post, err := postprocessors.Build(pc.ProcessorConfigs, pc.Processors)
	if err != nil {
		aiRes.Close()
		return nil, fmt.Errorf("configuring chunker: %w", err)
	}

	generator := services.NewGenerator(aiRes.LLMService, driven.GenerateOptions{
		MaxTokens:   b.settings.LLM.MaxTokens,
		Temperature: b.settings.LLM.Temperature,
	})
	generator.SetPromptStore(b.prompts)

	store, closer := b.openStore()

	pipeline, err := services.BuildPipeline(ctx, services.PipelineDeps{
		Ingestor:   services.NewIngestor(normalisers.NewDefaultRegistry(), post, normalisers.DetectMIMEType),
		Embedder:   aiRes.EmbeddingService,
		Generator:  generator,
		BuildIndex: flat.Builder,
		Store:      store,
	}, services.PipelineConfig{
		DocumentPath:   b.settings.Document.Path,
		TopK:           b.settings.Retrieval.TopK,
		MinScore:       b.settings.Retrieval.MinScore,
		MaxAnswerChars: b.settings.Retrieval.MaxAnswerChars,
		FallbackAnswer: b.settings.Retrieval.FallbackAnswer,
	})
	if err != nil {
		aiRes.Close()
		if closer != nil {
			_ = closer()
		}
		return nil, err
	}

	b.pipeline = pipeline
	b.aiRes = aiRes
	b.closer = closer
	return pipeline, nil
}

// openStore picks where embeddings are cached. A broken database falls
// back to memory so answering still works.
func (b *answerBuilder) openStore() (driven.IndexStore, func() error) {
	if !b.settings.Index.Persist {
		return memory.NewIndexStore(), nil
	}

	dataDir := b.settings.Index.DataDir
	if dataDir == "" {
		dataDir = b.defaultDataDir
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("Index cache disabled: %v", err)
		return memory.NewIndexStore(), nil
	}
	return store, store.Close
}

func (b *answerBuilder) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.aiRes != nil {
		b.aiRes.Close()
		b.aiRes = nil
	}
	if b.closer != nil {
		if err := b.closer(); err != nil {
			logger.Warn("Closing index store: %v", err)
		}
		b.closer = nil
	}
	b.pipeline = nil
}
