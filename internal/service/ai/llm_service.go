package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	"github.com/sarahkali/oracle/backend/internal/config"
	"github.com/sarahkali/oracle/backend/internal/model/chat"
)

var (
	// ErrNoBackends means no chat model was configured.
	ErrNoBackends = errors.New("no chat model backends configured")
	// ErrEmptyReply counts a blank answer as a failed attempt.
	ErrEmptyReply = errors.New("chat model returned an empty reply")
	// ErrAllBackendsFailed wraps the errors of every attempt.
	ErrAllBackendsFailed = errors.New("all chat model backends failed")
)

const (
	defaultTimeout      = 25 * time.Second
	defaultHistoryLimit = 10
)

var log = logrus.WithField("component", "ai")

// Backend is one chat model in the fallback order.
type Backend struct {
	Name  string
	Model model.BaseChatModel
}

// Options tune the gateway.
type Options struct {
	SystemPrompt string
	// Timeout bounds each attempt, not the whole fallback sequence.
	Timeout      time.Duration
	HistoryLimit int
}

type backendChain struct {
	name     string
	runnable compose.Runnable[map[string]any, *schema.Message]
}

// Service is the external LLM gateway: it completes a conversation with the
// persona prompt prepended, trying each backend in order.
type Service struct {
	chains       []backendChain
	systemPrompt string
	timeout      time.Duration
	historyLimit int
	apologies    atomic.Uint32
}

// NewService compiles one eino chain per backend.
func NewService(ctx context.Context, backends []Backend, opts Options) (*Service, error) {
	if len(backends) == 0 {
		return nil, ErrNoBackends
	}

	svc := &Service{
		systemPrompt: opts.SystemPrompt,
		timeout:      opts.Timeout,
		historyLimit: opts.HistoryLimit,
	}
	if svc.timeout <= 0 {
		svc.timeout = defaultTimeout
	}
	if svc.historyLimit <= 0 {
		svc.historyLimit = defaultHistoryLimit
	}

	for _, b := range backends {
		promptTemplate := prompt.FromMessages(
			schema.FString,
			schema.SystemMessage("{system}"),
			schema.MessagesPlaceholder("history", true),
		)

		chain := compose.NewChain[map[string]any, *schema.Message]()
		chain.AppendChatTemplate(promptTemplate)
		chain.AppendChatModel(b.Model)

		runnable, err := chain.Compile(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to compile chat chain for %s: %w", b.Name, err)
		}
		svc.chains = append(svc.chains, backendChain{name: b.Name, runnable: runnable})
	}

	return svc, nil
}

// NewServiceFromConfig builds an Ark backend for every configured model.
func NewServiceFromConfig(ctx context.Context, cfg config.AIConfig, systemPrompt string) (*Service, error) {
	var backends []Backend
	for _, name := range cfg.Models() {
		chatModel, err := cfg.NewChatModel(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model %s: %w", name, err)
		}
		backends = append(backends, Backend{Name: name, Model: chatModel})
	}

	return NewService(ctx, backends, Options{
		SystemPrompt: systemPrompt,
		Timeout:      cfg.RequestTimeout,
		HistoryLimit: cfg.HistoryLimit,
	})
}

// Complete returns the raw reply of the first backend that answers.
func (s *Service) Complete(ctx context.Context, history []chat.Message) (string, error) {
	input := map[string]any{
		"system":  s.systemPrompt,
		"history": s.buildHistoryMessages(history),
	}

	var errs []error
	for _, c := range s.chains {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		start := time.Now()
		response, err := c.runnable.Invoke(attemptCtx, input)
		cancel()

		entry := log.WithFields(logrus.Fields{"model": c.name, "elapsed": time.Since(start).Round(time.Millisecond)})
		if err == nil && (response == nil || strings.TrimSpace(response.Content) == "") {
			err = ErrEmptyReply
		}
		if err != nil {
			entry.WithError(err).Warn("chat backend failed, trying next")
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
			continue
		}

		entry.WithField("length", len(response.Content)).Info("generated reply")
		return response.Content, nil
	}

	return "", fmt.Errorf("%w: %w", ErrAllBackendsFailed, errors.Join(errs...))
}

// Reply completes the conversation and post-processes the answer. It never
// fails: when every backend is down a rotating apology is returned.
func (s *Service) Reply(ctx context.Context, history []chat.Message) string {
	raw, err := s.Complete(ctx, history)
	if err != nil {
		log.WithError(err).Error("falling back to apology")
		return s.Apology()
	}
	return Polish(raw)
}

// Apology returns the next apology of the rotation.
func (s *Service) Apology() string {
	return nextApology(&s.apologies)
}

func nextApology(counter *atomic.Uint32) string {
	n := counter.Add(1) - 1
	return apologies[int(n)%len(apologies)]
}

// Offline stands in for the gateway when no model is configured; every
// open-ended message gets an apology.
type Offline struct {
	apologies atomic.Uint32
}

// Reply returns the next apology of the rotation.
func (o *Offline) Reply(context.Context, []chat.Message) string {
	return nextApology(&o.apologies)
}

func (s *Service) buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > s.historyLimit {
		startIdx = len(messages) - s.historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
