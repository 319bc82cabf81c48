// Command chatclient is a terminal chat client for manual smoke testing.
// It connects to a running server, prints the history replay and every
// broadcast, and sends each stdin line as a chat message.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/gorilla/websocket"

	"github.com/lukemarsh/sentichat/internal/hub"
	chatmodel "github.com/lukemarsh/sentichat/internal/model/chat"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	url := flag.String("url", "ws://localhost:3000/ws", "server websocket URL")
	sender := flag.String("sender", "", "sender name, empty for server default")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", *url, err)
	}
	defer conn.Close()

	go readLoop(conn)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := send(conn, chatmodel.Submission{Sender: *sender, Text: line}); err != nil {
			log.Fatalf("send: %v", err)
		}
	}
}

func send(conn *websocket.Conn, sub chatmodel.Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	return conn.WriteJSON(hub.Envelope{Event: hub.EventChatMessage, Data: data})
}

func readLoop(conn *websocket.Conn) {
	for {
		var env hub.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			log.Fatalf("connection closed: %v", err)
		}

		switch env.Event {
		case hub.EventChatHistory:
			var history []chatmodel.Message
			if err := json.Unmarshal(env.Data, &history); err != nil {
				log.Printf("bad history payload: %v", err)
				continue
			}
			for _, msg := range history {
				printMessage(msg)
			}

		case hub.EventChatMessage:
			var msg chatmodel.Message
			if err := json.Unmarshal(env.Data, &msg); err != nil {
				log.Printf("bad message payload: %v", err)
				continue
			}
			printMessage(msg)

		default:
			log.Printf("unknown event %q", env.Event)
		}
	}
}

func printMessage(msg chatmodel.Message) {
	log.Printf("%s <%s> [%+d] %s", msg.Timestamp, msg.Sender, msg.Sentiment, msg.Text)
}
