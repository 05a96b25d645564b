// Package chat orchestrates one conversational turn: extraction and
// classification over the utterance, slot-memory load, rule-based resolution,
// slot-memory save, and optional generative enrichment.
package chat

import (
	"context"
	"strings"

	"elyubot/internal/catalog"
	"elyubot/internal/extract"
	"elyubot/internal/intent"
	"elyubot/internal/lexicon"
	"elyubot/internal/llm"
	"elyubot/internal/resolver"
	"elyubot/internal/session"

	"go.uber.org/zap"
)

// troubleText is the one message users see for infrastructure failures.
// Conversational gaps never reach this path; they have their own messages.
const troubleText = "I'm having trouble reaching my data right now — please try again in a moment!"

// Service processes turns. The catalog is shared and read-only; slot memory
// is isolated per conversation id and turns for one id are serialized.
type Service struct {
	provider  catalog.Provider
	norm      *lexicon.Normalizer
	extractor *extract.Extractor
	resolver  *resolver.Resolver
	sessions  session.Store
	locks     *session.KeyedMutex
	generator llm.Generator
	logger    *zap.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithGenerator enables the generative fallback for general queries. Failures
// downgrade silently to the rule-based answer.
func WithGenerator(g llm.Generator) ServiceOption {
	return func(s *Service) { s.generator = g }
}

// NewService wires a turn-processing service.
func NewService(provider catalog.Provider, norm *lexicon.Normalizer, sessions session.Store, logger *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		provider:  provider,
		norm:      norm,
		extractor: extract.New(norm),
		resolver:  resolver.New(provider, norm),
		sessions:  sessions,
		locks:     session.NewKeyedMutex(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send processes one turn without an external NLU score.
func (s *Service) Send(ctx context.Context, conversationID, utterance string) string {
	return s.SendScored(ctx, conversationID, utterance, nil)
}

// SendScored processes one turn, honoring an optional external NLU score.
// It always returns something sayable; infrastructure failures are logged
// and collapse into one generic trouble message for this conversation only.
func (s *Service) SendScored(ctx context.Context, conversationID, utterance string, score *intent.Score) string {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return "Say something and I'll do my best to help!"
	}

	// Extraction and classification are independent of each other.
	extracted := s.extractor.Extract(utterance)
	it := intent.ClassifyScored(utterance, score)

	lock := s.locks.Lock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	slots, err := s.sessions.Get(ctx, conversationID)
	if err != nil {
		s.logger.Error("load slot memory failed",
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
		return troubleText
	}

	confidence := -1.0
	if score != nil {
		confidence = score.Confidence
	}

	reply, err := s.resolver.Resolve(resolver.Request{
		Intent:      it,
		Towns:       extracted.Towns,
		ProductHint: extracted.ProductHint,
		Slots:       slots,
		Utterance:   utterance,
		Confidence:  confidence,
	})
	if err != nil {
		s.logger.Error("resolve turn failed",
			zap.String("conversation_id", conversationID),
			zap.String("intent", string(it)),
			zap.Error(err),
		)
		return troubleText
	}

	if len(reply.SlotOps) > 0 {
		updated := session.Apply(slots, reply.SlotOps)
		if err := s.sessions.Put(ctx, conversationID, updated); err != nil {
			// The turn still has an answer; losing the slot update only
			// costs follow-up context.
			s.logger.Warn("save slot memory failed",
				zap.String("conversation_id", conversationID),
				zap.Error(err),
			)
		}
	}

	if it == intent.General && s.generator != nil {
		if text, ok := s.enrich(ctx, utterance); ok {
			return text
		}
	}
	return reply.Text
}

// Reset clears a conversation's slot memory.
func (s *Service) Reset(ctx context.Context, conversationID string) {
	if err := s.sessions.Clear(ctx, conversationID); err != nil {
		s.logger.Warn("clear slot memory failed",
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
	}
}

// enrich asks the generative fallback for a data-grounded answer. Any
// failure keeps the rule-based reply.
func (s *Service) enrich(ctx context.Context, utterance string) (string, bool) {
	products, err := s.provider.Products()
	if err != nil {
		s.logger.Warn("load products for prompt failed", zap.Error(err))
		return "", false
	}
	text, err := s.generator.Generate(ctx, llm.GeneralPrompt(utterance, products))
	if err != nil {
		s.logger.Warn("generative fallback failed", zap.Error(err))
		return "", false
	}
	return text, true
}
