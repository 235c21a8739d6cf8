// Package narrative implements the external narrative-generation
// collaborator: an untrusted, optional, asynchronous dependency that turns
// computed statistics into prose. Calls are bounded by a timeout, pass
// through a consecutive-failure circuit breaker, and validate the response
// against a declared schema; every failure mode degrades to an unavailable
// state without touching the numeric snapshots.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"cna/internal/platform/config"
	"cna/internal/workforce/ports"
	"cna/pkg/platform/sentinel"
)

const instruction = `You are a workforce analyst writing for senior public-service leadership.
Given the JSON statistics of a Capability Needs Analysis, produce a concise executive narrative.
Ground every statement in the supplied figures; do not invent numbers.
Respond with JSON only.`

// responseSchema declares the structured narrative shape the model must emit.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"headline":        {Type: genai.TypeString},
		"overview":        {Type: genai.TypeString},
		"key_findings":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"risks":           {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"recommendations": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"headline", "overview", "key_findings", "recommendations"},
}

// Generator calls the Gemini API to produce the narrative annotation.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	breaker *breaker
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Generator)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// NewGenerator constructs the Gemini-backed generator. Returns nil without
// error when no API key is configured: the caller wires no generator and the
// narrative endpoint reports unavailable.
func NewGenerator(ctx context.Context, cfg config.NarrativeConfig, opts ...Option) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	g := &Generator{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		breaker: newBreaker(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate produces a narrative for the given snapshot subset. Implements
// ports.NarrativeGenerator.
func (g *Generator) Generate(ctx context.Context, req ports.NarrativeRequest) (*ports.Narrative, error) {
	if !g.breaker.Allow() {
		g.metrics.IncCall("short_circuit")
		return nil, fmt.Errorf("narrative circuit open: %w", sentinel.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema,
	})
	g.metrics.ObserveLatency(time.Since(start))
	if err != nil {
		g.breaker.RecordFailure()
		g.metrics.IncCall("error")
		if g.logger != nil {
			g.logger.WarnContext(ctx, "narrative generation failed", "error", err)
		}
		return nil, fmt.Errorf("generate narrative: %w: %w", sentinel.ErrUnavailable, err)
	}

	narrative, err := parseResponse(result.Text())
	if err != nil {
		g.breaker.RecordFailure()
		g.metrics.IncCall("invalid")
		if g.logger != nil {
			g.logger.WarnContext(ctx, "narrative response rejected", "error", err)
		}
		return nil, fmt.Errorf("invalid narrative response: %w: %w", sentinel.ErrUnavailable, err)
	}

	g.breaker.RecordSuccess()
	g.metrics.IncCall("ok")
	return narrative, nil
}

func buildPrompt(req ports.NarrativeRequest) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"dataset":      req.DatasetLabel,
		"aggregated":   req.Aggregated,
		"segmentation": req.Grid,
	})
	if err != nil {
		return "", fmt.Errorf("marshal narrative request: %w", err)
	}
	return "CNA statistics:\n" + string(payload), nil
}

// parseResponse validates the model output against the declared schema. The
// schema constrains the model, but the response is still untrusted input.
func parseResponse(text string) (*ports.Narrative, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}
	var narrative ports.Narrative
	if err := json.Unmarshal([]byte(text), &narrative); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if narrative.Headline == "" || narrative.Overview == "" {
		return nil, fmt.Errorf("response missing required narrative fields")
	}
	narrative.GeneratedAt = time.Now()
	return &narrative, nil
}
