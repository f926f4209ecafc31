package livekit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	livekit "github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"

	"github.com/johnquangdev/telehealth-assistant/pkg/config"
)

// Client wraps the LiveKit room operations used for appointment calls
type Client interface {
	CreateRoom(ctx context.Context, name string) (*RoomInfo, error)
	DeleteRoom(ctx context.Context, roomName string) error
}

// RoomInfo holds room information
type RoomInfo struct {
	Name         string
	SID          string
	CreationTime time.Time
}

// a consultation is one patient and one doctor
const maxParticipants = 2

// realClient is the real LiveKit client implementation
type realClient struct {
	roomClient       *lksdk.RoomServiceClient
	emptyTimeout     uint32
	departureTimeout uint32
}

// NewClient creates a new LiveKit client. With UseMock set, rooms are only
// tracked in memory.
func NewClient(cfg *config.LiveKitConfig) Client {
	if cfg.UseMock {
		return newMockClient()
	}

	return &realClient{
		roomClient:       lksdk.NewRoomServiceClient(cfg.URL, cfg.APIKey, cfg.APISecret),
		emptyTimeout:     uint32(cfg.EmptyTimeout),
		departureTimeout: uint32(cfg.DepartureTimeout),
	}
}

// CreateRoom creates a new room in LiveKit. Creating an existing room
// returns that room.
func (c *realClient) CreateRoom(ctx context.Context, name string) (*RoomInfo, error) {
	room, err := c.roomClient.CreateRoom(ctx, &livekit.CreateRoomRequest{
		Name:             name,
		MaxParticipants:  maxParticipants,
		EmptyTimeout:     c.emptyTimeout,
		DepartureTimeout: c.departureTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return &RoomInfo{
		Name:         room.Name,
		SID:          room.Sid,
		CreationTime: time.Unix(room.CreationTime, 0),
	}, nil
}

// DeleteRoom deletes a room from LiveKit
func (c *realClient) DeleteRoom(ctx context.Context, roomName string) error {
	_, err := c.roomClient.DeleteRoom(ctx, &livekit.DeleteRoomRequest{
		Room: roomName,
	})
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

// mockClient keeps rooms in memory for local development
type mockClient struct {
	mu    sync.Mutex
	rooms map[string]*RoomInfo
}

func newMockClient() *mockClient {
	return &mockClient{rooms: make(map[string]*RoomInfo)}
}

// CreateRoom (mock) simulates room creation
func (m *mockClient) CreateRoom(ctx context.Context, name string) (*RoomInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if room, ok := m.rooms[name]; ok {
		return room, nil
	}
	room := &RoomInfo{
		Name:         name,
		SID:          "RM_mock_" + uuid.NewString(),
		CreationTime: time.Now(),
	}
	m.rooms[name] = room
	return room, nil
}

// DeleteRoom (mock) simulates room deletion
func (m *mockClient) DeleteRoom(ctx context.Context, roomName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, roomName)
	return nil
}
