package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/repository"
	"tutorbot_backend/internal/util"

	"github.com/go-redis/redis/v8"
)

const topicListCacheKey = "tutorbot:topics"

type TopicService struct {
	topics *repository.TopicRepository
	rdb    *redis.Client
}

func NewTopicService(topics *repository.TopicRepository, rdb *redis.Client) *TopicService {
	return &TopicService{topics: topics, rdb: rdb}
}

// GetAll lists the topics, served from a short-lived Redis cache since the
// topic table is effectively static.
func (s *TopicService) GetAll(ctx context.Context) ([]model.Topic, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, topicListCacheKey).Result(); err == nil {
			var topics []model.Topic
			if json.Unmarshal([]byte(cached), &topics) == nil {
				return topics, nil
			}
		}
	}

	topics, err := s.topics.FindAll()
	if err != nil {
		return nil, util.StoreError(err)
	}

	if s.rdb != nil {
		if data, err := json.Marshal(topics); err == nil {
			s.rdb.Set(ctx, topicListCacheKey, data, 10*time.Minute)
		}
	}
	return topics, nil
}

// GetByName returns the topic's description entry.
func (s *TopicService) GetByName(name string) (*model.Topic, error) {
	topic, err := s.topics.FindByName(name)
	if err != nil {
		return nil, util.StoreError(err)
	}
	if topic == nil {
		return nil, util.NotFoundError(fmt.Sprintf("El tema '%s' no existe. Por favor, elige otro.", name))
	}
	return topic, nil
}

// Create registers a topic through the admin API and invalidates the cache.
func (s *TopicService) Create(ctx context.Context, name, description string) (*model.Topic, error) {
	existing, err := s.topics.FindByName(name)
	if err != nil {
		return nil, util.StoreError(err)
	}
	if existing != nil {
		return nil, util.PreconditionError(fmt.Sprintf("El tema '%s' ya existe.", name))
	}

	topic := &model.Topic{Name: name, Description: description}
	if err := s.topics.Create(topic); err != nil {
		return nil, util.StoreError(err)
	}
	if s.rdb != nil {
		s.rdb.Del(ctx, topicListCacheKey)
	}
	return topic, nil
}
