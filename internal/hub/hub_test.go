package hub_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	wshandler "github.com/lukemarsh/sentichat/internal/handler/ws"
	"github.com/lukemarsh/sentichat/internal/hub"
	chatmodel "github.com/lukemarsh/sentichat/internal/model/chat"
	chatservice "github.com/lukemarsh/sentichat/internal/service/chat"
)

// scoreByPrefix is a deterministic stand-in for the lexicon analyzer.
func scoreByPrefix(text string) int {
	switch {
	case strings.HasPrefix(text, "+"):
		return 2
	case strings.HasPrefix(text, "-"):
		return -2
	default:
		return 0
	}
}

type testServer struct {
	url     string
	chatSvc *chatservice.Service
}

func newTestServer(t *testing.T, score hub.ScoreFunc) *testServer {
	t.Helper()

	chatSvc := chatservice.NewService()
	h := hub.New(chatSvc, score)

	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	r := chi.NewRouter()
	wshandler.New(h).RegisterRoutes(r)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		cancel()
		h.Shutdown()
	})

	return &testServer{
		url:     "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
		chatSvc: chatSvc,
	}
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) hub.Envelope {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(3 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	var env hub.Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read envelope: %v", err)
	}
	return env
}

func readHistory(t *testing.T, conn *websocket.Conn) []chatmodel.Message {
	t.Helper()
	env := readEnvelope(t, conn)
	if env.Event != hub.EventChatHistory {
		t.Fatalf("expected %s as first frame, got %s", hub.EventChatHistory, env.Event)
	}
	var history []chatmodel.Message
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	return history
}

func readMessage(t *testing.T, conn *websocket.Conn) chatmodel.Message {
	t.Helper()
	env := readEnvelope(t, conn)
	if env.Event != hub.EventChatMessage {
		t.Fatalf("expected %s, got %s", hub.EventChatMessage, env.Event)
	}
	var msg chatmodel.Message
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	return msg
}

func sendSubmission(t *testing.T, conn *websocket.Conn, sub chatmodel.Submission) {
	t.Helper()
	data, err := json.Marshal(sub)
	if err != nil {
		t.Fatalf("marshal submission: %v", err)
	}
	if err := conn.WriteJSON(hub.Envelope{Event: hub.EventChatMessage, Data: data}); err != nil {
		t.Fatalf("send submission: %v", err)
	}
}

func TestConnectReplaysEmptyHistory(t *testing.T) {
	srv := newTestServer(t, scoreByPrefix)

	conn := dial(t, srv.url)
	if history := readHistory(t, conn); len(history) != 0 {
		t.Fatalf("expected empty replay, got %d entries", len(history))
	}
}

func TestBroadcastReachesSenderAndPeers(t *testing.T) {
	srv := newTestServer(t, scoreByPrefix)

	connA := dial(t, srv.url)
	readHistory(t, connA)
	connB := dial(t, srv.url)
	readHistory(t, connB)

	sendSubmission(t, connA, chatmodel.Submission{Sender: "Alice", Text: "+hello everyone"})

	gotA := readMessage(t, connA)
	gotB := readMessage(t, connB)

	if gotA != gotB {
		t.Fatalf("sender and peer received different records:\n%+v\n%+v", gotA, gotB)
	}
	if gotA.Sender != "Alice" || gotA.Text != "+hello everyone" {
		t.Fatalf("unexpected record: %+v", gotA)
	}
	if gotA.Sentiment != 2 {
		t.Fatalf("expected sentiment 2, got %d", gotA.Sentiment)
	}
}

func TestDefaultsCoercedOnSubmission(t *testing.T) {
	srv := newTestServer(t, scoreByPrefix)

	conn := dial(t, srv.url)
	readHistory(t, conn)

	sendSubmission(t, conn, chatmodel.Submission{})
	got := readMessage(t, conn)

	if got.Sender != chatmodel.DefaultSender {
		t.Fatalf("expected sender %q, got %q", chatmodel.DefaultSender, got.Sender)
	}
	if got.Text != "" || got.FileURL != "" {
		t.Fatalf("expected empty text and fileUrl, got %+v", got)
	}
	if got.Timestamp == "" {
		t.Fatal("expected server-assigned timestamp")
	}
	if got.Sentiment != 0 {
		t.Fatalf("expected neutral sentiment, got %d", got.Sentiment)
	}
}

func TestLateJoinerGetsHistoryNotLiveDuplicate(t *testing.T) {
	srv := newTestServer(t, scoreByPrefix)

	connA := dial(t, srv.url)
	readHistory(t, connA)

	sendSubmission(t, connA, chatmodel.Submission{Sender: "Alice", Text: "first"})
	first := readMessage(t, connA)

	// The joiner's replay must contain exactly the log at connection time.
	connB := dial(t, srv.url)
	history := readHistory(t, connB)
	if len(history) != 1 {
		t.Fatalf("expected 1 replayed message, got %d", len(history))
	}
	if history[0] != first {
		t.Fatalf("replay differs from broadcast record:\n%+v\n%+v", history[0], first)
	}

	// The next frame B sees must be the next live message, not a replayed
	// duplicate of the first one.
	sendSubmission(t, connA, chatmodel.Submission{Sender: "Alice", Text: "second"})
	if got := readMessage(t, connB); got.Text != "second" {
		t.Fatalf("expected live %q, got %+v", "second", got)
	}
}

func TestAppendOrderEqualsBroadcastOrder(t *testing.T) {
	srv := newTestServer(t, scoreByPrefix)

	conn := dial(t, srv.url)
	readHistory(t, conn)

	texts := []string{"one", "two", "three", "four", "five"}
	for _, text := range texts {
		sendSubmission(t, conn, chatmodel.Submission{Sender: "Alice", Text: text})
	}
	for i, want := range texts {
		if got := readMessage(t, conn); got.Text != want {
			t.Fatalf("broadcast %d was %q, want %q", i, got.Text, want)
		}
	}

	history := srv.chatSvc.History(context.Background())
	if len(history) != len(texts) {
		t.Fatalf("expected %d stored messages, got %d", len(texts), len(history))
	}
	for i, want := range texts {
		if history[i].Text != want {
			t.Fatalf("log position %d holds %q, want %q", i, history[i].Text, want)
		}
	}
}

func TestMalformedFrameIsDroppedNotFatal(t *testing.T) {
	srv := newTestServer(t, scoreByPrefix)

	conn := dial(t, srv.url)
	readHistory(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write raw frame: %v", err)
	}

	// The connection must survive and keep delivering.
	sendSubmission(t, conn, chatmodel.Submission{Sender: "Alice", Text: "still here"})
	if got := readMessage(t, conn); got.Text != "still here" {
		t.Fatalf("expected delivery after malformed frame, got %+v", got)
	}
	if srv.chatSvc.Len() != 1 {
		t.Fatalf("malformed frame must not reach the log, length %d", srv.chatSvc.Len())
	}
}

func TestScorerPanicYieldsNeutralScore(t *testing.T) {
	panicking := func(text string) int {
		panic("lexicon exploded")
	}
	guarded := func(text string) (score int) {
		defer func() {
			if recover() != nil {
				score = 0
			}
		}()
		return panicking(text)
	}
	srv := newTestServer(t, guarded)

	conn := dial(t, srv.url)
	readHistory(t, conn)

	sendSubmission(t, conn, chatmodel.Submission{Sender: "Alice", Text: "anything"})
	if got := readMessage(t, conn); got.Sentiment != 0 {
		t.Fatalf("scorer failure must default to 0, got %d", got.Sentiment)
	}
}
