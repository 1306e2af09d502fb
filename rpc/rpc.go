package rpc

import (
	"net"
	"net/rpc"

	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/auction"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/logger"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services must be registered with the
// net/rpc package before Start.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AuctionService exposes admin queries over net/rpc. Methods follow the
// net/rpc signature: exported method, exported arguments, second argument
// is a pointer, return type is error.
type AuctionService struct {
	registry *auction.Registry
}

func NewAuctionService(registry *auction.Registry) *AuctionService {
	return &AuctionService{registry: registry}
}

type ListRoomsArgs struct{}

type ListRoomsReply struct {
	Rooms []auction.RoomStats
}

func (as *AuctionService) ListRooms(args *ListRoomsArgs, reply *ListRoomsReply) error {
	reply.Rooms = as.registry.Stats()
	return nil
}

type RoomStatsArgs struct {
	RoomID string
}

type RoomStatsReply struct {
	Stats auction.RoomStats
}

func (as *AuctionService) RoomStats(args *RoomStatsArgs, reply *RoomStatsReply) error {
	eng, exists := as.registry.Get(args.RoomID)
	if !exists {
		return auction.ErrRoomNotFound
	}
	reply.Stats = eng.Stats()
	return nil
}
