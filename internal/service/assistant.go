package service

import (
	"context"
	"fmt"
	"strings"

	"babylog/internal/logger"
	"babylog/internal/models"
	"babylog/internal/repository"

	"google.golang.org/genai"
)

// GeminiConfig configures the assistant's text-generation call.
type GeminiConfig struct {
	APIKey string
	Model  string
}

const defaultGeminiModel = "gemini-2.5-flash"

// contextLogLimit caps how many recent entries go into the prompt.
const contextLogLimit = 15

const systemInstruction = `You are a helpful, empathetic, and knowledgeable post-partum and parenting assistant named "BabyLog AI".
Your goal is to help parents interpret their baby's tracking data and answer questions about feeding, diapers, and sleep.
You are gentle, encouraging, and concise (parents are tired).
You have access to the user's recent logs. Use them to provide context-aware answers.
If the user asks about medical advice, give general guidance but always strictly advise them to consult a pediatrician.`

// Fixed fallback replies. Callers never see an error from Ask.
const (
	fallbackNoKey   = "I'm sorry, I can't connect to the AI service right now (Missing API Key)."
	fallbackFailure = "Sorry, I'm having trouble thinking right now. Please try again."
	fallbackEmpty   = "I couldn't generate a response."
)

type AssistantService struct {
	logs repository.LogRepo
	cfg  GeminiConfig
	log  *logger.Logger
}

func NewAssistantService(logs repository.LogRepo, cfg GeminiConfig, log *logger.Logger) *AssistantService {
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	return &AssistantService{logs: logs, cfg: cfg, log: log}
}

// Ask answers a single user question with recent-log context. It is stateless
// per call: no retry, no streaming, no conversation memory. Failures degrade
// to a fixed fallback string and are logged for diagnostics.
func (s *AssistantService) Ask(ctx context.Context, message string) string {
	if s.cfg.APIKey == "" {
		return fallbackNoKey
	}

	recent, err := s.logs.ListAll(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("assistant_read_logs_failed", "err", err)
		}
		return fallbackFailure
	}

	reply, err := s.generate(ctx, buildPrompt(message, recent))
	if err != nil {
		if s.log != nil {
			s.log.Errorw("assistant_generate_failed", "err", err)
		}
		return fallbackFailure
	}
	if reply == "" {
		return fallbackEmpty
	}
	return reply
}

// generate performs the single-shot model call; Ask maps its error to the
// fallback reply so the result type stays honest internally.
func (s *AssistantService) generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: s.cfg.APIKey})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx,
		s.cfg.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// buildPrompt renders the context block plus the user question.
func buildPrompt(message string, recent []models.LogEntry) string {
	var b strings.Builder
	b.WriteString("Here are the last few logs for my baby:\n")
	b.WriteString(buildLogContext(recent))
	b.WriteString("\nUser Question: ")
	b.WriteString(message)
	return b.String()
}

// buildLogContext renders at most contextLogLimit entries, one line each.
func buildLogContext(recent []models.LogEntry) string {
	if len(recent) > contextLogLimit {
		recent = recent[:contextLogLimit]
	}
	var b strings.Builder
	for _, e := range recent {
		b.WriteString("- ")
		b.WriteString(e.CreatedAt.Format("2006-01-02 15:04"))
		b.WriteString(": ")
		b.WriteString(string(e.Type))
		if e.SubType != "" {
			b.WriteString(" " + e.SubType)
		}
		if e.AmountMl > 0 {
			fmt.Fprintf(&b, " (%dml)", e.AmountMl)
		}
		if e.DurationSeconds > 0 {
			fmt.Fprintf(&b, " (%dm)", e.DurationSeconds/60)
		}
		b.WriteString("\n")
	}
	return b.String()
}
