package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/panelclaw/panelclaw/pkg/config"
	"github.com/panelclaw/panelclaw/pkg/protocol"
)

// fakeHost upgrades one connection, records the first panel envelope, and
// answers with a chat message.
func fakeHost(t *testing.T, fromPanel chan map[string]interface{}) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		fromPanel <- msg

		conn.WriteJSON(map[string]interface{}{
			"type":        "chatMessage",
			"tabID":       msg["tabID"],
			"messageType": "answer",
			"message":     "hello back",
		})

		// Hold the connection until the panel hangs up.
		conn.ReadMessage()
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClient_RoundTrip(t *testing.T) {
	fromPanel := make(chan map[string]interface{}, 1)
	srv := fakeHost(t, fromPanel)
	defer srv.Close()

	toPanel := make(chan protocol.Inbound, 1)
	client := NewClient(config.HostConfig{WSUrl: wsURL(srv), ReconnectInterval: 1}, func(msg protocol.Inbound) {
		toPanel <- msg
	})

	ctx := context.Background()
	if err := client.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer client.Stop(ctx)

	err := client.Send(&protocol.ChatPrompt{
		Base: protocol.Base{
			Command: protocol.CmdChatPrompt,
			TabID:   "tab-1",
			TabType: "featuredev",
		},
		ChatMessage: "hello there",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	select {
	case got := <-fromPanel:
		if got["command"] != "chat-prompt" || got["tabID"] != "tab-1" || got["tabType"] != "featuredev" {
			t.Fatalf("host saw unexpected envelope: %v", got)
		}
		if got["chatMessage"] != "hello there" {
			t.Fatalf("prompt text mangled: %v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("host never received the panel envelope")
	}

	select {
	case msg := <-toPanel:
		if msg.Type != protocol.TypeChatMessage || msg.TabID != "tab-1" {
			t.Fatalf("panel saw unexpected envelope: %+v", msg)
		}
		if msg.Message == nil || *msg.Message != "hello back" {
			t.Fatalf("answer body mangled: %+v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("panel never received the host reply")
	}
}

func TestClient_SendBeforeStart(t *testing.T) {
	client := NewClient(config.HostConfig{WSUrl: "ws://127.0.0.1:1/panel"}, nil)

	err := client.Send(&protocol.StopResponse{Base: protocol.Base{Command: protocol.CmdStopResponse}})
	if err == nil {
		t.Fatal("sending without a connection should fail")
	}
}

func TestClient_UndecodableFrameDropped(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.WriteMessage(websocket.TextMessage, []byte("this is not json"))
		conn.WriteJSON(map[string]interface{}{"type": "chatInputEnabledMessage", "tabID": "t", "enabled": true})
		conn.ReadMessage()
	}))
	defer srv.Close()

	toPanel := make(chan protocol.Inbound, 2)
	client := NewClient(config.HostConfig{WSUrl: wsURL(srv), ReconnectInterval: 1}, func(msg protocol.Inbound) {
		toPanel <- msg
	})

	ctx := context.Background()
	if err := client.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer client.Stop(ctx)

	select {
	case msg := <-toPanel:
		if msg.Type != protocol.TypeChatInputEnabledMessage {
			t.Fatalf("expected the valid frame only, got %+v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("valid frame after a bad one never arrived")
	}
}
