package service

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"campus-assistant-be/internal/repository/memory"
	"campus-assistant-be/pkg/capture"
	"campus-assistant-be/pkg/imagesearch"
	"campus-assistant-be/pkg/knowledge"
	"campus-assistant-be/pkg/session"
	"campus-assistant-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTextGen scripts the generative backend and counts calls.
type fakeTextGen struct {
	reply string
	err   error
	calls int
}

func (f *fakeTextGen) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

// fakeResolver returns a scripted image set and records the term asked for.
type fakeResolver struct {
	images   []store.ImageRef
	lastTerm string
	calls    int
}

func (f *fakeResolver) Resolve(ctx context.Context, term string, count int) []store.ImageRef {
	f.calls++
	f.lastTerm = term
	return f.images
}

type fakeDevice struct {
	available bool
	started   []string
	stopped   []string
}

func (f *fakeDevice) Available() bool { return f.available }
func (f *fakeDevice) Start(sessionId string) error {
	f.started = append(f.started, sessionId)
	return nil
}
func (f *fakeDevice) Stop(sessionId string) error {
	f.stopped = append(f.stopped, sessionId)
	return nil
}

type serviceFixture struct {
	svc      IDispatchService
	textGen  *fakeTextGen
	resolver *fakeResolver
	device   *fakeDevice
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	textGen := &fakeTextGen{reply: "generated answer"}
	resolver := &fakeResolver{}
	device := &fakeDevice{available: true}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	svc := NewDispatchService(
		memory.NewSessionRepository(),
		textGen,
		resolver,
		device,
		pubSub,
		nil, // analytics bus absent
		3,
	)
	return &serviceFixture{svc: svc, textGen: textGen, resolver: resolver, device: device}
}

func (f *serviceFixture) newSession(t *testing.T) string {
	t.Helper()
	res, err := f.svc.CreateSession(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.Id)
	return res.Id
}

func TestSendQueryGenericText(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)

	view, err := f.svc.SendQuery(context.Background(), id, "explain recursion")
	require.NoError(t, err)

	assert.Equal(t, store.StateShowingResult, view.State)
	assert.False(t, view.Loading)
	assert.Equal(t, "explain recursion", view.RecentPrompt)
	assert.Equal(t, []string{"explain recursion"}, view.PrevPrompts)
	require.NotNil(t, view.Result)
	assert.Equal(t, store.ResultText, view.Result.Kind)
	assert.Equal(t, "generated answer", view.Result.Text)
	assert.Equal(t, 1, f.textGen.calls)
	assert.Equal(t, 0, f.resolver.calls)
}

func TestSendQueryStaticFAQSkipsNetwork(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)

	view, err := f.svc.SendQuery(context.Background(), id, "what are the average fees?")
	require.NoError(t, err)

	require.NotNil(t, view.Result)
	assert.Equal(t, store.ResultText, view.Result.Kind)
	assert.Contains(t, view.Result.Text, "B.Tech")
	// Table hit means neither remote backend is touched.
	assert.Equal(t, 0, f.textGen.calls)
	assert.Equal(t, 0, f.resolver.calls)
}


func TestSendQueryImageRequest(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)
	f.resolver.images = []store.ImageRef{
		{Id: "1", URL: "https://cdn.example/1.jpg", Provider: "pixabay"},
		{Id: "2", URL: "https://cdn.example/2.jpg", Provider: "pixabay"},
		{Id: "3", URL: "https://cdn.example/3.jpg", Provider: "pixabay"},
	}

	view, err := f.svc.SendQuery(context.Background(), id, "show me images of cats")
	require.NoError(t, err)

	assert.Equal(t, "cats", f.resolver.lastTerm)
	require.NotNil(t, view.Result)
	assert.Equal(t, store.ResultImages, view.Result.Kind)
	assert.Equal(t, `Here are some images related to "cats":`, view.Result.Text)
	assert.Len(t, view.Result.Images, 3)
	assert.Equal(t, 0, f.textGen.calls)
}

func TestSendQueryImageFallbackAlwaysYieldsImages(t *testing.T) {
	// Wire the real resolver with two dead providers and the local
	// generator last: the dispatch must still end in an image result.
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	resolver := imagesearch.NewResolver([]imagesearch.Provider{
		&deadProvider{name: "pixabay"},
		&deadProvider{name: "pexels"},
		imagesearch.NewPicsumProvider(),
	}, log.New(io.Discard, "", 0))

	svc := NewDispatchService(
		memory.NewSessionRepository(),
		&fakeTextGen{},
		resolver,
		&fakeDevice{available: true},
		pubSub,
		nil,
		3,
	)
	res, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	view, err := svc.SendQuery(context.Background(), res.Id, "show me images of cats")
	require.NoError(t, err)

	require.NotNil(t, view.Result)
	assert.Equal(t, store.ResultImages, view.Result.Kind)
	require.Len(t, view.Result.Images, 3)
	ids := map[string]bool{}
	for _, img := range view.Result.Images {
		assert.Equal(t, "lorem-picsum", img.Provider)
		assert.False(t, ids[img.Id], "image ids must be distinct")
		ids[img.Id] = true
	}
}

// gatedTextGen blocks inside GenerateText until released, holding a
// dispatch in flight for as long as the test needs.
type gatedTextGen struct {
	entered chan struct{}
	release chan struct{}
}

func (g *gatedTextGen) GenerateText(ctx context.Context, prompt string) (string, error) {
	close(g.entered)
	<-g.release
	return "late answer", nil
}

func TestSendQueryRejectedWhileDispatchInFlight(t *testing.T) {
	gate := &gatedTextGen{entered: make(chan struct{}), release: make(chan struct{})}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	svc := NewDispatchService(
		memory.NewSessionRepository(),
		gate,
		&fakeResolver{},
		&fakeDevice{available: true},
		pubSub,
		nil,
		3,
	)
	res, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.SendQuery(context.Background(), res.Id, "slow question")
		firstDone <- err
	}()
	<-gate.entered

	// The first dispatch is parked inside the generator; a second submit
	// on the same session must bounce off the in-flight guard.
	_, err = svc.SendQuery(context.Background(), res.Id, "impatient retry")
	assert.ErrorIs(t, err, session.ErrDispatchInFlight)

	close(gate.release)
	require.NoError(t, <-firstDone)

	view, err := svc.GetSession(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"slow question"}, view.PrevPrompts)
	require.NotNil(t, view.Result)
	assert.Equal(t, "late answer", view.Result.Text)
}

func TestSendQueryBlankPrompt(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)

	view, err := f.svc.SendQuery(context.Background(), id, "   ")
	require.NoError(t, err)

	// Blank submit is absorbed: fixed message shown, no transition.
	assert.Equal(t, store.StateIdle, view.State)
	assert.False(t, view.Loading)
	assert.Empty(t, view.PrevPrompts)
	require.NotNil(t, view.Result)
	assert.Equal(t, MsgPromptRequired, view.Result.Text)
	assert.Equal(t, 0, f.textGen.calls)
}

func TestSendQueryGenerationFailure(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)
	f.textGen.err = errors.New("upstream 500")
	f.textGen.reply = ""

	view, err := f.svc.SendQuery(context.Background(), id, "anything")
	require.NoError(t, err)

	// Failures surface as a normal text result, never an error state.
	assert.Equal(t, store.StateShowingResult, view.State)
	require.NotNil(t, view.Result)
	assert.Equal(t, MsgGenerationFailed, view.Result.Text)
}

func TestSendQueryEmptyGeneration(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)
	f.textGen.reply = ""

	view, err := f.svc.SendQuery(context.Background(), id, "anything")
	require.NoError(t, err)
	require.NotNil(t, view.Result)
	assert.Equal(t, MsgNoAIResponse, view.Result.Text)
}

func TestSendQueryUnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SendQuery(context.Background(), "no-such-session", "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSendCard(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)

	view, err := f.svc.SendCard(context.Background(), id, knowledge.CardTravelIdeas)
	require.NoError(t, err)

	assert.Equal(t, store.StateShowingResult, view.State)
	require.NotNil(t, view.Result)
	assert.Contains(t, view.Result.Text, "Munnar")
	// Card answers bypass history and both retrieval backends.
	assert.Empty(t, view.PrevPrompts)
	assert.Equal(t, 0, f.textGen.calls)
	assert.Equal(t, 0, f.resolver.calls)
}

func TestSendCardUnknownKey(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)

	view, err := f.svc.SendCard(context.Background(), id, "bogus")
	require.NoError(t, err)
	require.NotNil(t, view.Result)
	assert.Equal(t, knowledge.NoMatchApology, view.Result.Text)
}

func TestVoiceFlow(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)

	view, err := f.svc.StartVoice(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, store.StateListening, view.State)
	assert.True(t, view.Listening)
	assert.Equal(t, []string{id}, f.device.started)

	ev := capture.Event{Kind: capture.EventTranscript, Transcript: "what are the fees"}
	view, err = f.svc.VoiceResult(context.Background(), id, ev)
	require.NoError(t, err)
	assert.Equal(t, store.StateIdle, view.State)
	assert.False(t, view.Listening)
	assert.Equal(t, "what are the fees", view.DraftInput)
	assert.Equal(t, []string{id}, f.device.stopped)
}

func TestStartVoiceUnavailable(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)
	f.device.available = false

	view, err := f.svc.StartVoice(context.Background(), id)
	assert.ErrorIs(t, err, ErrCaptureUnavailable)
	// Guard failure leaves the session exactly as it was.
	require.NotNil(t, view)
	assert.Equal(t, store.StateIdle, view.State)
	assert.Empty(t, f.device.started)
}

func TestVoiceErrorBecomesResult(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)

	_, err := f.svc.StartVoice(context.Background(), id)
	require.NoError(t, err)

	ev := capture.Event{Kind: capture.EventError, ErrorCode: "not-allowed"}
	view, err := f.svc.VoiceResult(context.Background(), id, ev)
	require.NoError(t, err)
	require.NotNil(t, view.Result)
	assert.Equal(t, "Mic Error: not-allowed. Please ensure your microphone is enabled.", view.Result.Text)
}

func TestNewChatKeepsHistory(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)

	_, err := f.svc.SendQuery(context.Background(), id, "first question")
	require.NoError(t, err)
	_, err = f.svc.UpdateDraft(context.Background(), id, "half typed")
	require.NoError(t, err)

	view, err := f.svc.NewChat(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, store.StateIdle, view.State)
	assert.Nil(t, view.Result)
	assert.Empty(t, view.DraftInput)
	assert.Empty(t, view.RecentPrompt)
	assert.Equal(t, []string{"first question"}, view.PrevPrompts)
}

func TestConsecutiveDuplicatePromptsCollapse(t *testing.T) {
	f := newFixture(t)
	id := f.newSession(t)

	for _, prompt := range []string{"same", "same", "other"} {
		_, err := f.svc.SendQuery(context.Background(), id, prompt)
		require.NoError(t, err)
	}

	view, err := f.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{"same", "other"}, view.PrevPrompts)
}

// deadProvider always fails, standing in for a provider with a bad key.
type deadProvider struct {
	name string
}

func (d *deadProvider) Name() string { return d.name }

func (d *deadProvider) FetchImages(ctx context.Context, term string, count int) ([]store.ImageRef, error) {
	return nil, errors.New("connection refused")
}
