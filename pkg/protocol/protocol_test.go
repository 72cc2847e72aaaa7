package protocol

import "testing"

func TestDecode_OptionalFieldsStayAbsent(t *testing.T) {
	msg, err := Decode([]byte(`{"type": "chatMessage", "tabID": "tab-1"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if msg.Type != TypeChatMessage || msg.TabID != "tab-1" {
		t.Fatalf("discriminator fields wrong: %+v", msg)
	}
	if msg.Message != nil {
		t.Errorf("absent message should decode to nil, got %q", *msg.Message)
	}
	if msg.CanBeVoted != nil {
		t.Errorf("absent canBeVoted should decode to nil, got %v", *msg.CanBeVoted)
	}
	if msg.FollowUps != nil {
		t.Errorf("absent followUps should decode to nil, got %v", msg.FollowUps)
	}
}

func TestDecode_UnrecognizedTypeIsNotAnError(t *testing.T) {
	msg, err := Decode([]byte(`{"type": "brandNewThing", "tabID": "tab-1", "whatever": 42}`))
	if err != nil {
		t.Fatalf("newer host message types must still decode: %v", err)
	}
	if msg.Type != "brandNewThing" {
		t.Fatalf("discriminator not preserved: %q", msg.Type)
	}
}

func TestDecode_FalseIsNotAbsent(t *testing.T) {
	msg, err := Decode([]byte(`{"type": "chatMessage", "tabID": "t", "canBeVoted": false}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if msg.CanBeVoted == nil || *msg.CanBeVoted {
		t.Fatal("explicit canBeVoted=false must survive decoding")
	}
}
