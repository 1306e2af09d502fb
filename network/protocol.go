package network

const (
	MsgTypeHeartbeat = 1

	// Inbound commands
	MsgTypeCreateRoom = 101
	MsgTypeJoinRoom   = 102
	MsgTypeStartSpin  = 201
	MsgTypeBid        = 202
	MsgTypeSkip       = 203
	MsgTypeForceSell  = 204

	// Outbound notifications
	MsgTypeRoomJoined  = 301
	MsgTypeRoomState   = 302
	MsgTypeWheelResult = 303
	MsgTypeReject      = 304
)
