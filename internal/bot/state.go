package bot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Conversation steps for the multi-message flows. The core services stay
// stateless; the transport keeps this per-user state in Redis with a TTL so
// abandoned conversations expire on their own.
const (
	stateAwaitingFirstName = "awaiting_first_name"
	stateAwaitingLastName  = "awaiting_last_name"
	stateAwaitingCode      = "awaiting_code"
)

const conversationTTL = 15 * time.Minute

type conversationState struct {
	Step       string `json:"step"`
	FirstName  string `json:"firstName,omitempty"`
	ExerciseID uint   `json:"exerciseId,omitempty"`
}

type conversationStore struct {
	rdb *redis.Client
}

func newConversationStore(rdb *redis.Client) *conversationStore {
	return &conversationStore{rdb: rdb}
}

func conversationKey(userID string) string {
	return "tutorbot:conv:" + userID
}

func (s *conversationStore) Get(ctx context.Context, userID string) (*conversationState, error) {
	data, err := s.rdb.Get(ctx, conversationKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state conversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *conversationStore) Set(ctx context.Context, userID string, state *conversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, conversationKey(userID), data, conversationTTL).Err()
}

func (s *conversationStore) Clear(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, conversationKey(userID)).Err()
}
