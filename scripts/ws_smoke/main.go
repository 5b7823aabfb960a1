package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/wirechat-registry/internal/core"
	"github.com/vovakirdan/wirechat-registry/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

type rawOutbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	nick := flag.String("nick", "", "nickname to switch to after connecting")
	channel := flag.String("channel", "general", "channel to create or join")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(typ string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typ, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", typ, err)
		}
		return nil
	}

	if *nick != "" {
		if err := send(proto.InboundTypeNick, proto.NickData{Nick: *nick}); err != nil {
			return err
		}
	}
	if err := send(proto.InboundTypeCreate, proto.CreateData{Channel: *channel}); err != nil {
		return err
	}

	for {
		var out rawOutbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		fmt.Printf("type=%s event=%s data=%s\n", out.Type, out.Event, string(out.Data))

		switch {
		case out.Error != nil && out.Error.Code == core.ErrCodeChannelExists:
			if err := send(proto.InboundTypeJoin, proto.ChannelData{Channel: *channel}); err != nil {
				return err
			}
		case out.Error != nil:
			return fmt.Errorf("server error %s: %s", out.Error.Code, out.Error.Msg)
		case out.Event == "channel_created" || out.Event == "user_joined":
			if err := send(proto.InboundTypeMsg, proto.MsgData{Channel: *channel, Text: *text}); err != nil {
				return err
			}
		case out.Event == "message":
			return nil
		}
	}
}
