// Package flow drives the consultation funnel: service choice, payment,
// data collection and report delivery.
package flow

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sarahkali/oracle/backend/internal/analysis/extract"
	"github.com/sarahkali/oracle/backend/internal/analysis/intent"
	"github.com/sarahkali/oracle/backend/internal/engine/astrology"
	"github.com/sarahkali/oracle/backend/internal/engine/numerology"
	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/chat"
	"github.com/sarahkali/oracle/backend/internal/model/persona"
	"github.com/sarahkali/oracle/backend/internal/model/profile"
	"github.com/sarahkali/oracle/backend/internal/model/report"
	chatservice "github.com/sarahkali/oracle/backend/internal/service/chat"
	"github.com/sarahkali/oracle/backend/internal/service/reportcache"
	"github.com/sarahkali/oracle/backend/internal/service/session"
)

var (
	ErrMissingDependency = errors.New("flow: missing dependency")
	errNotDeterministic  = errors.New("service has no calculation engine")
)

var log = logrus.WithField("component", "flow")

// transcriptWindow bounds how many recorded turns Converse replays.
const transcriptWindow = 20

// Completer is the open-ended conversation fallback.
type Completer interface {
	Reply(ctx context.Context, history []chat.Message) string
}

// Config wires the processor's collaborators. Transcript and Now are optional.
type Config struct {
	Sessions   *session.Store
	Catalog    catalog.Store
	Cache      reportcache.Cache
	LLM        Completer
	Transcript chatservice.Log
	Persona    persona.Persona
	PixKey     string
	Now        func() time.Time
}

// Processor turns one inbound message plus history into one reply.
type Processor struct {
	sessions   *session.Store
	catalog    catalog.Store
	cache      reportcache.Cache
	llm        Completer
	transcript chatservice.Log
	persona    persona.Persona
	pixKey     string
	now        func() time.Time
}

// NewProcessor validates cfg and builds a Processor.
func NewProcessor(cfg Config) (*Processor, error) {
	switch {
	case cfg.Sessions == nil:
		return nil, fmt.Errorf("%w: session store", ErrMissingDependency)
	case cfg.Catalog == nil:
		return nil, fmt.Errorf("%w: catalog", ErrMissingDependency)
	case cfg.Cache == nil:
		return nil, fmt.Errorf("%w: report cache", ErrMissingDependency)
	case cfg.LLM == nil:
		return nil, fmt.Errorf("%w: llm gateway", ErrMissingDependency)
	}

	p := &Processor{
		sessions:   cfg.Sessions,
		catalog:    cfg.Catalog,
		cache:      cfg.Cache,
		llm:        cfg.LLM,
		transcript: cfg.Transcript,
		persona:    cfg.Persona,
		pixKey:     cfg.PixKey,
		now:        cfg.Now,
	}
	if p.persona.ID == "" {
		p.persona = persona.Default()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p, nil
}

// Session exposes the user's current funnel state.
func (p *Processor) Session(userID string) chat.Session {
	return p.sessions.Get(userID)
}

// ProcessMessage handles the newest user turn of history and returns the
// reply. It never fails: unexpected errors become a generic apology.
func (p *Processor) ProcessMessage(ctx context.Context, userID string, history []chat.Message) string {
	unlock := p.sessions.Lock(userID)
	defer unlock()
	return p.process(ctx, userID, history)
}

// Converse answers text using the recorded transcript as history.
// Without a transcript only the current message is considered.
func (p *Processor) Converse(ctx context.Context, userID, text string) string {
	unlock := p.sessions.Lock(userID)
	defer unlock()

	var history []chat.Message
	if p.transcript != nil {
		past, err := p.transcript.History(ctx, userID, transcriptWindow)
		if err != nil {
			log.WithError(err).WithField("user", userID).Warn("could not load transcript")
		}
		history = past
	}
	history = append(history, chat.UserMessage(text))
	return p.process(ctx, userID, history)
}

func (p *Processor) process(ctx context.Context, userID string, history []chat.Message) (reply string) {
	entry := log.WithField("user", userID)
	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).WithField("stack", string(debug.Stack())).Error("message processing panicked")
			reply = RealignReply
		}
	}()

	text, _ := chat.LastUserContent(history)
	s := p.sessions.Get(userID)

	switch s.Stage {
	case chat.StageAwaitingPayment:
		reply = p.awaitingPayment(ctx, s, text, history)
	case chat.StagePaymentConfirmed:
		reply = p.fulfil(ctx, s, text, history)
	default:
		reply = p.start(ctx, s, text, history)
	}

	entry.WithField("stage", s.Stage).Debug("message processed")
	p.record(ctx, userID, text, reply)
	return reply
}

func (p *Processor) start(ctx context.Context, s chat.Session, text string, history []chat.Message) string {
	if svc, ok := intent.DetectService(text, p.catalog); ok {
		reply := paymentInstructions(svc, p.pixKey)
		p.choose(s.UserID, svc)
		return reply
	}
	defer p.sessions.Update(s.UserID, nil)
	if text == "" || chat.CountUserTurns(history) <= 1 || intent.IsGreeting(text) {
		return welcomeMenu(p.persona, p.catalog.List())
	}
	return p.llm.Reply(ctx, history)
}

func (p *Processor) awaitingPayment(_ context.Context, s chat.Session, text string, _ []chat.Message) string {
	if s.Service == nil {
		p.sessions.Reset(s.UserID)
		return welcomeMenu(p.persona, p.catalog.List())
	}

	if intent.DetectPaymentProof(text) {
		reply := paymentConfirmed(*s.Service)
		p.sessions.Update(s.UserID, func(s *chat.Session) {
			s.Stage = chat.StagePaymentConfirmed
			s.PaymentConfirmed = true
			s.Asked = profile.FieldNone
		})
		return reply
	}

	if svc, ok := intent.DetectService(text, p.catalog); ok && svc.ID != s.Service.ID {
		reply := paymentInstructions(svc, p.pixKey)
		p.choose(s.UserID, svc)
		return reply
	}

	p.sessions.Update(s.UserID, nil)
	return paymentReminder(*s.Service, p.pixKey)
}

func (p *Processor) fulfil(ctx context.Context, s chat.Session, _ string, history []chat.Message) string {
	if s.Service == nil {
		p.sessions.Reset(s.UserID)
		return welcomeMenu(p.persona, p.catalog.List())
	}
	svc := *s.Service
	if !svc.Kind.Deterministic() {
		reply := p.llm.Reply(ctx, history)
		p.sessions.Update(s.UserID, nil)
		return reply
	}

	prof := extract.ExtractWithHint(history, svc.Kind, s.Asked)
	if missing := extract.MissingFields(prof, svc.Kind); len(missing) > 0 {
		return p.ask(s.UserID, missing[0], prof, svc.Kind)
	}

	rep, err := p.report(ctx, svc, prof)
	if err != nil {
		var ve *numerology.ValidationError
		if errors.As(err, &ve) && ve.Field == profile.FieldName {
			p.sessions.Update(s.UserID, func(s *chat.Session) { s.Asked = profile.FieldName })
			return invalidNameReply
		}
		if errors.As(err, &ve) || errors.Is(err, astrology.ErrInvalidDate) {
			log.WithError(err).WithField("user", s.UserID).Info("rejected profile")
			p.sessions.Update(s.UserID, func(s *chat.Session) { s.Asked = profile.FieldDate })
			return invalidDataReply
		}
		log.WithError(err).WithField("user", s.UserID).Error("report generation failed")
		return RealignReply
	}

	p.sessions.Reset(s.UserID)
	return deliverReport(rep.Text)
}

func (p *Processor) ask(userID string, field profile.Field, prof profile.Profile, kind catalog.Kind) string {
	reply := missingPrompt(field, prof, extract.SoftMissing(prof, kind))
	p.sessions.Update(userID, func(s *chat.Session) { s.Asked = field })
	return reply
}

// report serves from the cache or computes and caches a fresh report.
func (p *Processor) report(ctx context.Context, svc catalog.Service, prof profile.Profile) (*report.Report, error) {
	if rep, ok := p.cache.Lookup(ctx, svc.ID, prof); ok {
		log.WithField("service", svc.ID).Debug("report cache hit")
		return rep, nil
	}

	rep, err := p.compute(svc.Kind, prof)
	if err != nil {
		return nil, err
	}
	if err := p.cache.Store(ctx, svc.ID, prof, rep); err != nil {
		log.WithError(err).WithField("service", svc.ID).Warn("could not cache report")
	}
	return rep, nil
}

func (p *Processor) compute(kind catalog.Kind, prof profile.Profile) (*report.Report, error) {
	switch kind {
	case catalog.KindNumerology:
		reading, err := numerology.Compute(*prof.Name, *prof.Date, p.now().Year())
		if err != nil {
			return nil, err
		}
		return reading.Report(), nil
	case catalog.KindAstrology:
		name := ""
		if prof.Name != nil {
			name = *prof.Name
		}
		chart, err := astrology.Compute(name, *prof.Date, prof.Time, prof.Place)
		if err != nil {
			return nil, err
		}
		return chart.Report(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errNotDeterministic, kind)
	}
}

func (p *Processor) choose(userID string, svc catalog.Service) {
	p.sessions.Update(userID, func(s *chat.Session) {
		s.Stage = chat.StageAwaitingPayment
		s.Service = &svc
		s.PaymentConfirmed = false
		s.Asked = profile.FieldNone
	})
}

// record appends the turn to the transcript. Failures are logged only.
func (p *Processor) record(ctx context.Context, userID, text, reply string) {
	if p.transcript == nil {
		return
	}
	if text != "" {
		if _, err := p.transcript.Append(ctx, chat.Message{SessionID: userID, Role: chat.RoleUser, Content: text}); err != nil {
			log.WithError(err).Warn("could not record user turn")
			return
		}
	}
	if _, err := p.transcript.Append(ctx, chat.Message{SessionID: userID, Role: chat.RoleAssistant, Content: reply}); err != nil {
		log.WithError(err).Warn("could not record assistant turn")
	}
}
