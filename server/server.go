package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/auction"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/broadcast"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/catalog"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/config"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/logger"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/models"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/monitor"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/network"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/session"
	auction_rpc "github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/rpc"
)

// GameServer is the websocket gateway. It owns sessions and routes decoded
// commands into the room registry; all game rules live in the auction package.
type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	sessionManager *session.Manager
	registry       *auction.Registry
	broadcaster    *broadcast.RoomBroadcaster
	monitor        *monitor.Monitor
	rpcServer      *auction_rpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, cat *catalog.Catalog, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		addr:           cfg.Server.HTTPAddress,
		sessionManager: session.NewManager(),
		monitor:        mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.sessionManager)
	s.registry = auction.NewRegistry(cat, cfg.Game, s.broadcaster)

	rpcServer, err := auction_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(auction_rpc.NewAuctionService(s.registry))

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Auction server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlineParticipants()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecOnlineParticipants()
		// The participant record stays behind so a rejoin by name can
		// reclaim balance and team.
		s.registry.HandleDisconnect(sess.GetID())
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	start := time.Now()
	s.monitor.IncCommandsReceived()

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.LastActive = time.Now()
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, packet)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeStartSpin:
		s.handleRoomCommand(sess, "startSpin", func(eng *auction.Engine) error {
			return eng.StartSpin(sess.GetID())
		})
	case network.MsgTypeBid:
		s.handleRoomCommand(sess, "bid", func(eng *auction.Engine) error {
			return eng.Bid(sess.GetID())
		})
	case network.MsgTypeSkip:
		s.handleRoomCommand(sess, "skip", func(eng *auction.Engine) error {
			return eng.Skip(sess.GetID())
		})
	case network.MsgTypeForceSell:
		s.handleRoomCommand(sess, "forceSell", func(eng *auction.Engine) error {
			return eng.ForceSell(sess.GetID())
		})
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}

	s.monitor.ObserveCommandLatency(time.Since(start))
}

func (s *GameServer) handleCreateRoom(sess *session.Session, packet *network.Packet) {
	var req models.CreateRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendReject(sess, "createRoom", "invalid request")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.sendReject(sess, "createRoom", "display name required")
		return
	}
	if sess.Room() != "" {
		s.sendReject(sess, "createRoom", "already in a room")
		return
	}

	roomID, eng := s.registry.CreateRoom(sess.GetID(), name)
	sess.SetRoom(roomID, name)
	s.monitor.SetActiveRooms(s.registry.Count())

	data, _ := json.Marshal(models.RoomJoined{RoomID: roomID})
	sess.Send(network.MsgTypeRoomJoined, data)
	// The creator's session was not yet tagged with the room during the
	// join broadcast, so push a fresh snapshot now.
	eng.Broadcast()
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req models.JoinRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendReject(sess, "joinRoom", "invalid request")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.sendReject(sess, "joinRoom", "display name required")
		return
	}
	if sess.Room() != "" {
		s.sendReject(sess, "joinRoom", "already in a room")
		return
	}

	roomID := strings.ToUpper(strings.TrimSpace(req.RoomID))
	if _, exists := s.registry.Get(roomID); !exists {
		s.sendReject(sess, "joinRoom", "room not found")
		return
	}

	// Tag the session first so the join broadcast reaches the joiner.
	sess.SetRoom(roomID, name)
	if _, err := s.registry.Join(roomID, sess.GetID(), name); err != nil {
		sess.SetRoom("", "")
		s.sendReject(sess, "joinRoom", err.Error())
		return
	}

	data, _ := json.Marshal(models.RoomJoined{RoomID: roomID})
	sess.Send(network.MsgTypeRoomJoined, data)
}

func (s *GameServer) handleRoomCommand(sess *session.Session, command string, apply func(*auction.Engine) error) {
	roomID := sess.Room()
	if roomID == "" {
		s.sendReject(sess, command, "not in a room")
		return
	}
	eng, exists := s.registry.Get(roomID)
	if !exists {
		s.sendReject(sess, command, "room not found")
		return
	}
	if err := apply(eng); err != nil {
		s.sendReject(sess, command, err.Error())
	}
}

// sendReject tells only the sender why a command was refused. Rejections
// never mutate room state, so nobody else needs to hear about them.
func (s *GameServer) sendReject(sess *session.Session, command, reason string) {
	data, err := json.Marshal(models.Reject{Command: command, Reason: reason})
	if err != nil {
		return
	}
	sess.Send(network.MsgTypeReject, data)
}
