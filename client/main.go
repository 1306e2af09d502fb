package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeCreateRoom  = 101
	MsgTypeJoinRoom    = 102
	MsgTypeStartSpin   = 201
	MsgTypeBid         = 202
	MsgTypeSkip        = 203
	MsgTypeForceSell   = 204
	MsgTypeRoomJoined  = 301
	MsgTypeRoomState   = 302
	MsgTypeWheelResult = 303
	MsgTypeReject      = 304
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func label(msgID uint16) string {
	switch msgID {
	case MsgTypeRoomJoined:
		return "room-joined"
	case MsgTypeRoomState:
		return "state"
	case MsgTypeWheelResult:
		return "wheel"
	case MsgTypeReject:
		return "reject"
	default:
		return fmt.Sprintf("msg-%d", msgID)
	}
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]
			log.Printf("<- RECV (%s): %s", label(msgID), string(data))
		}
	}()

	log.Println("Commands:")
	log.Println("  create <name>       create a room")
	log.Println("  join <room> <name>  join (or rejoin) a room")
	log.Println("  spin | bid | skip | sell")

	// Write loop
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			fields := strings.Fields(text)
			if len(fields) == 0 {
				continue
			}

			var msgID uint16
			var payload []byte
			switch fields[0] {
			case "create":
				if len(fields) < 2 {
					log.Println("Usage: create <name>")
					continue
				}
				msgID = MsgTypeCreateRoom
				payload, _ = json.Marshal(map[string]string{"name": fields[1]})
			case "join":
				if len(fields) < 3 {
					log.Println("Usage: join <room> <name>")
					continue
				}
				msgID = MsgTypeJoinRoom
				payload, _ = json.Marshal(map[string]string{"roomId": fields[1], "name": fields[2]})
			case "spin":
				msgID = MsgTypeStartSpin
			case "bid":
				msgID = MsgTypeBid
			case "skip":
				msgID = MsgTypeSkip
			case "sell":
				msgID = MsgTypeForceSell
			default:
				log.Printf("Unknown command: %s", fields[0])
				continue
			}

			if err := send(c, msgID, payload); err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT: %s", fields[0])
		}
	}
}
