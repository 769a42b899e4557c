package bootstrap

import (
	"context"
	"log"

	"ai-interviewer-be/internal/config"
	"ai-interviewer-be/internal/controller"
	"ai-interviewer-be/internal/pkg/logger"
	"ai-interviewer-be/internal/repository/memory"
	"ai-interviewer-be/internal/service"
	"ai-interviewer-be/pkg/embedding"
	"ai-interviewer-be/pkg/llm"
	"ai-interviewer-be/pkg/llm/factory"
	"ai-interviewer-be/pkg/llm/gemini"
	pktNats "ai-interviewer-be/pkg/nats"
	"ai-interviewer-be/pkg/speech/elevenlabs"
	"ai-interviewer-be/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ResumeController    controller.IResumeController
	InterviewController controller.IInterviewController
	SpeechController    controller.ISpeechController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Collaborators
	// Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GeminiQuestionGen)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Question-generation LLM
	questionLLM, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GeminiQuestionGen,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Feedback passes run on their own keys to isolate quota. When the
	// provider is not Gemini they all share the question LLM.
	scoresLLM, summaryLLM, flagsLLM := questionLLM, questionLLM, questionLLM
	if cfg.Ai.LLMProvider == "gemini" {
		scoresLLM = feedbackProvider(cfg.Keys.GeminiFeedbackScores, cfg.Ai.LLMModel, questionLLM)
		summaryLLM = feedbackProvider(cfg.Keys.GeminiFeedbackSummary, cfg.Ai.LLMModel, questionLLM)
		flagsLLM = feedbackProvider(cfg.Keys.GeminiFeedbackFlags, cfg.Ai.LLMModel, questionLLM)
	}

	// 3.5 Infrastructure
	// NATS (optional: events are auxiliary)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis (optional: TTS cache only)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// In-Memory Stores
	sessionRepo := memory.NewSessionRepository()
	indexRepo := memory.NewIndexRepository()
	flatStore := vectorstore.NewFlatStore(embeddingProvider)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.ScoreAnswerTopic, pubSub)

	resumeService := service.NewResumeService(
		indexRepo,
		flatStore,
		service.PlainTextExtractor{},
		sysLogger,
	)

	questionService := service.NewQuestionService(
		flatStore,
		questionLLM,
		sysLogger,
	)

	interviewService := service.NewInterviewService(
		sessionRepo,
		indexRepo,
		questionService,
		publisherService,
		natsPub,
		cfg.Interview.DefaultQuestionCount,
		sysLogger,
	)

	feedbackService := service.NewFeedbackService(
		scoresLLM,
		summaryLLM,
		flagsLLM,
		interviewService,
		sysLogger,
	)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.ScoreAnswerTopic,
		feedbackService,
	)

	speechProvider := elevenlabs.NewElevenLabsProvider(cfg.Keys.ElevenLabs, cfg.Interview.TTSVoiceId)
	speechService := service.NewSpeechService(speechProvider, rdb, sysLogger)

	// 5. Controllers
	return &Container{
		ResumeController:    controller.NewResumeController(resumeService),
		InterviewController: controller.NewInterviewController(interviewService, feedbackService),
		SpeechController:    controller.NewSpeechController(speechService),

		ConsumerService: consumerService,
	}
}

func feedbackProvider(apiKey, model string, fallback llm.LLMProvider) llm.LLMProvider {
	if apiKey == "" {
		return fallback
	}
	return gemini.NewGeminiProvider(apiKey, model)
}
