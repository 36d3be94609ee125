package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/repository/contract"
	"campus-assistant-be/pkg/capture"
	"campus-assistant-be/pkg/events"
	"campus-assistant-be/pkg/intent"
	"campus-assistant-be/pkg/knowledge"
	"campus-assistant-be/pkg/session"
	"campus-assistant-be/pkg/store"

	pktNats "campus-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// SessionEventsTopic is the in-process topic linking session mutations
// to the WebSocket push pipeline.
const SessionEventsTopic = "SESSION_STATE_CHANGED"

// Fixed user-visible strings. Failures are always shown through the
// normal result-display path, never as a distinct error state.
const (
	MsgPromptRequired     = "Please enter a query."
	MsgNoAIResponse       = "No relevant response from the AI."
	MsgGenerationFailed   = "Failed to get a response. Please try again later."
	MsgCaptureUnavailable = "Speech recognition is not supported in your browser. Please try Chrome or Edge."

	imageCaptionFormat = "Here are some images related to %q:"
)

// ErrSessionNotFound reports an unknown or expired session id.
var ErrSessionNotFound = errors.New("session not found")

// ErrCaptureUnavailable reports that voice capture cannot start because
// no capture device is offered.
var ErrCaptureUnavailable = errors.New("speech capture unavailable")

// TextGenerator is the narrow contract over the generative-text service.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageResolver is the narrow contract over the image fallback chain.
type ImageResolver interface {
	Resolve(ctx context.Context, term string, count int) []store.ImageRef
}

// IDispatchService defines the query dispatcher interface
type IDispatchService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.SessionView, error)
	UpdateDraft(ctx context.Context, sessionId string, draft string) (*dto.SessionView, error)
	SendQuery(ctx context.Context, sessionId string, prompt string) (*dto.SessionView, error)
	SendCard(ctx context.Context, sessionId string, card string) (*dto.SessionView, error)
	StartVoice(ctx context.Context, sessionId string) (*dto.SessionView, error)
	VoiceResult(ctx context.Context, sessionId string, ev capture.Event) (*dto.SessionView, error)
	NewChat(ctx context.Context, sessionId string) (*dto.SessionView, error)
}

// dispatchService coordinates the classifier, the knowledge table, the
// provider clients and the session state machine. It holds no per-query
// state itself; every dispatch reads and mutates exactly one Session.
type dispatchService struct {
	sessionRepo contract.SessionRepository
	manager     *session.Manager
	textGen     TextGenerator
	resolver    ImageResolver
	device      capture.Device
	pubSub      *gochannel.GoChannel
	natsPub     *pktNats.Publisher // nil when NATS is absent
	imageCount  int
	logger      *log.Logger
}

// NewDispatchService creates the dispatcher with all collaborators injected.
func NewDispatchService(
	sessionRepo contract.SessionRepository,
	textGen TextGenerator,
	resolver ImageResolver,
	device capture.Device,
	pubSub *gochannel.GoChannel,
	natsPub *pktNats.Publisher,
	imageCount int,
) IDispatchService {
	logger := initDispatchLogger()
	return &dispatchService{
		sessionRepo: sessionRepo,
		manager:     session.NewManager(logger),
		textGen:     textGen,
		resolver:    resolver,
		device:      device,
		pubSub:      pubSub,
		natsPub:     natsPub,
		imageCount:  imageCount,
		logger:      logger,
	}
}

func initDispatchLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "dispatch.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[DISPATCH] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (ds *dispatchService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	s := store.NewSession(uuid.New().String())
	ds.sessionRepo.Save(s)
	ds.logger.Printf("[SESSION] Created %s", s.Id)
	return &dto.CreateSessionResponse{Id: s.Id}, nil
}

func (ds *dispatchService) GetSession(ctx context.Context, sessionId string) (*dto.SessionView, error) {
	s, found := ds.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}
	return dto.NewSessionView(s), nil
}

func (ds *dispatchService) UpdateDraft(ctx context.Context, sessionId string, draft string) (*dto.SessionView, error) {
	s, found := ds.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}
	ds.manager.SetDraft(s, draft)
	ds.sessionRepo.Save(s)
	return dto.NewSessionView(s), nil
}

// SendQuery runs one full dispatch: classify, retrieve through exactly
// one path, and land the normalized result back in the session.
func (ds *dispatchService) SendQuery(ctx context.Context, sessionId string, prompt string) (*dto.SessionView, error) {
	s, found := ds.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	if err := ds.manager.BeginDispatch(s, prompt); err != nil {
		if errors.Is(err, session.ErrBlankQuery) {
			// Not a transition: the fixed prompt-required message is
			// shown and nothing else about the session changes.
			ds.manager.ShowNotice(s, MsgPromptRequired)
			ds.sessionRepo.Save(s)
			ds.publishSessionEvent(s.Id)
			return dto.NewSessionView(s), nil
		}
		return nil, err
	}
	ds.sessionRepo.Save(s)
	ds.publishSessionEvent(s.Id)

	queryIntent := intent.Classify(prompt)
	ds.publishAnalytics(ctx, events.NewQueryDispatched(s.Id, string(queryIntent)))

	result := ds.retrieve(ctx, queryIntent, prompt)

	ds.manager.CompleteDispatch(s, result)
	ds.sessionRepo.Save(s)
	ds.publishSessionEvent(s.Id)
	ds.publishAnalytics(ctx, events.NewQueryAnswered(s.Id, string(result.Kind), len(result.Images)))

	return dto.NewSessionView(s), nil
}

// retrieve executes the single retrieval path the intent selects. A
// static-FAQ miss falls through to the generative path; that is the only
// sanctioned crossover.
func (ds *dispatchService) retrieve(ctx context.Context, queryIntent intent.Intent, prompt string) *store.RetrievalResult {
	if queryIntent == intent.IntentImageRequest {
		term := intent.ExtractImageTerm(prompt)
		images := ds.resolver.Resolve(ctx, term, ds.imageCount)
		return store.ImageResult(fmt.Sprintf(imageCaptionFormat, term), images)
	}

	if queryIntent == intent.IntentStaticFAQ {
		if body, ok := knowledge.Lookup(prompt); ok {
			return store.TextResult(body)
		}
		ds.logger.Printf("[DISPATCH] FAQ lookup missed for %q, falling through to generative text", prompt)
	}

	text, err := ds.textGen.GenerateText(ctx, prompt)
	if err != nil {
		ds.logger.Printf("[DISPATCH] Text generation failed: %v", err)
		return store.TextResult(MsgGenerationFailed)
	}
	if text == "" {
		return store.TextResult(MsgNoAIResponse)
	}
	return store.TextResult(text)
}

// SendCard serves a card shortcut: a direct canned answer, no
// classification, no history append, no loading phase.
func (ds *dispatchService) SendCard(ctx context.Context, sessionId string, card string) (*dto.SessionView, error) {
	s, found := ds.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	body, ok := knowledge.LookupCard(card)
	if !ok {
		body = knowledge.NoMatchApology
	}
	ds.manager.ShowCanned(s, body)
	ds.sessionRepo.Save(s)
	ds.publishSessionEvent(s.Id)
	return dto.NewSessionView(s), nil
}

func (ds *dispatchService) StartVoice(ctx context.Context, sessionId string) (*dto.SessionView, error) {
	s, found := ds.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	if !ds.device.Available() {
		// Guard failed: session stays untouched, caller is told synchronously.
		return dto.NewSessionView(s), ErrCaptureUnavailable
	}

	if err := ds.manager.StartListening(s); err != nil {
		return nil, err
	}
	if err := ds.device.Start(s.Id); err != nil {
		ds.logger.Printf("[CAPTURE] Device start failed for %s: %v", s.Id, err)
	}
	ds.sessionRepo.Save(s)
	ds.publishSessionEvent(s.Id)
	return dto.NewSessionView(s), nil
}

func (ds *dispatchService) VoiceResult(ctx context.Context, sessionId string, ev capture.Event) (*dto.SessionView, error) {
	s, found := ds.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	if err := ds.manager.FinishListening(s, ev); err != nil {
		return nil, err
	}
	if err := ds.device.Stop(s.Id); err != nil {
		ds.logger.Printf("[CAPTURE] Device stop failed for %s: %v", s.Id, err)
	}
	ds.sessionRepo.Save(s)
	ds.publishSessionEvent(s.Id)
	return dto.NewSessionView(s), nil
}

func (ds *dispatchService) NewChat(ctx context.Context, sessionId string) (*dto.SessionView, error) {
	s, found := ds.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	ds.manager.NewChat(s)
	ds.sessionRepo.Save(s)
	ds.publishSessionEvent(s.Id)
	ds.publishAnalytics(ctx, events.NewSessionReset(s.Id))
	return dto.NewSessionView(s), nil
}

func (ds *dispatchService) publishSessionEvent(sessionId string) {
	payload, err := json.Marshal(dto.SessionEventMessage{SessionId: sessionId})
	if err != nil {
		ds.logger.Printf("[EVENT] Failed to marshal session event: %v", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := ds.pubSub.Publish(SessionEventsTopic, msg); err != nil {
		ds.logger.Printf("[EVENT] Failed to publish session event: %v", err)
	}
}

// publishAnalytics is best effort: a missing or unreachable NATS bus
// never affects a dispatch.
func (ds *dispatchService) publishAnalytics(ctx context.Context, event events.Event) {
	if ds.natsPub == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := ds.natsPub.Publish(pubCtx, event); err != nil {
		ds.logger.Printf("[EVENT] Failed to publish analytics event %s: %v", event.EventType(), err)
	}
}
