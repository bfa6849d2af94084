package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"todolist-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	maxTaskNameLen        = 100
	maxTaskDescriptionLen = 100

	todoListCacheKey = "todos:all"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrTodoNotFound = errors.New("todo not found")
)

// TodoStore is the persistence surface the service needs. The SQL repository
// implements it; tests substitute an in-memory fake.
type TodoStore interface {
	CreateTodo(ctx context.Context, name string) (*entity.Todo, error)
	ListTodos(ctx context.Context) ([]entity.Todo, error)
	GetTodoByID(ctx context.Context, id int) (*entity.Todo, error)
	ToggleComplete(ctx context.Context, id int) (*entity.Todo, error)
	UpdateDescription(ctx context.Context, id int, description string) (*entity.Todo, error)
	SetCompleteStatus(ctx context.Context, id int, status bool) (*entity.Todo, error)
	DeleteTodo(ctx context.Context, id int) error
}

// TodoService validates input, delegates to the store and maintains the
// optional list cache and event stream. Both kafkaWriter and rdb may be nil,
// in which case the corresponding concern is disabled.
type TodoService struct {
	store       TodoStore
	kafkaWriter *kafka.Writer
	rdb         *redis.Client
}

// NewTodoService creates a new instance of TodoService.
func NewTodoService(store TodoStore, kafkaWriter *kafka.Writer, rdb *redis.Client) *TodoService {
	return &TodoService{
		store:       store,
		kafkaWriter: kafkaWriter,
		rdb:         rdb,
	}
}

func (s *TodoService) CreateTodo(ctx context.Context, name string) (*entity.Todo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: task_name is required", ErrValidation)
	}
	if len(name) > maxTaskNameLen {
		return nil, fmt.Errorf("%w: task_name exceeds %d characters", ErrValidation, maxTaskNameLen)
	}

	todo, err := s.store.CreateTodo(ctx, name)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating todo")
		return nil, err
	}

	s.invalidateListCache(ctx)
	s.publishTodoEvent(ctx, todo, "created")
	return todo, nil
}

func (s *TodoService) ListTodos(ctx context.Context) ([]entity.Todo, error) {
	if cached, ok := s.readListCache(ctx); ok {
		return cached, nil
	}

	todos, err := s.store.ListTodos(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing todos")
		return nil, err
	}

	s.writeListCache(ctx, todos)
	return todos, nil
}

func (s *TodoService) ToggleComplete(ctx context.Context, id int) (*entity.Todo, error) {
	todo, err := s.store.ToggleComplete(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrTodoNotFound, id)
		}
		logger.Error().Err(err).Msgf("Error toggling todo %d", id)
		return nil, err
	}

	s.invalidateListCache(ctx)
	s.publishTodoEvent(ctx, todo, "toggled")
	return todo, nil
}

func (s *TodoService) UpdateDescription(ctx context.Context, id int, description string) (*entity.Todo, error) {
	if len(description) > maxTaskDescriptionLen {
		return nil, fmt.Errorf("%w: task_description exceeds %d characters", ErrValidation, maxTaskDescriptionLen)
	}

	todo, err := s.store.UpdateDescription(ctx, id, description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrTodoNotFound, id)
		}
		logger.Error().Err(err).Msgf("Error updating description of todo %d", id)
		return nil, err
	}

	s.invalidateListCache(ctx)
	s.publishTodoEvent(ctx, todo, "updated")
	return todo, nil
}

func (s *TodoService) SetCompleteStatus(ctx context.Context, id int, status bool) (*entity.Todo, error) {
	todo, err := s.store.SetCompleteStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrTodoNotFound, id)
		}
		logger.Error().Err(err).Msgf("Error setting status of todo %d", id)
		return nil, err
	}

	s.invalidateListCache(ctx)
	s.publishTodoEvent(ctx, todo, "updated")
	return todo, nil
}

// DeleteTodo removes a task. A missing id is treated as already deleted.
func (s *TodoService) DeleteTodo(ctx context.Context, id int) error {
	err := s.store.DeleteTodo(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting todo %d", id)
		return err
	}

	s.invalidateListCache(ctx)
	s.publishTodoEvent(ctx, &entity.Todo{TaskID: id}, "deleted")
	return nil
}

func (s *TodoService) readListCache(ctx context.Context) ([]entity.Todo, bool) {
	if s.rdb == nil {
		return nil, false
	}

	cached, err := s.rdb.Get(ctx, todoListCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msg("Error reading todo list from cache")
		}
		return nil, false
	}

	var todos []entity.Todo
	if err := json.Unmarshal([]byte(cached), &todos); err != nil {
		logger.Error().Err(err).Msg("Error unmarshalling cached todo list")
		return nil, false
	}

	return todos, true
}

func (s *TodoService) writeListCache(ctx context.Context, todos []entity.Todo) {
	if s.rdb == nil {
		return
	}

	payload, err := json.Marshal(todos)
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling todo list for cache")
		return
	}

	if err := s.rdb.Set(ctx, todoListCacheKey, payload, 0).Err(); err != nil {
		logger.Error().Err(err).Msg("Error writing todo list to cache")
	}
}

func (s *TodoService) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}

	if err := s.rdb.Del(ctx, todoListCacheKey).Err(); err != nil {
		logger.Error().Err(err).Msg("Error invalidating todo list cache")
	}
}

type todoEvent struct {
	Action string       `json:"action"`
	Todo   *entity.Todo `json:"todo"`
}

// publishTodoEvent emits a change event. Failures are logged and swallowed so
// the request itself never fails on a broker problem.
func (s *TodoService) publishTodoEvent(ctx context.Context, todo *entity.Todo, action string) {
	if s.kafkaWriter == nil {
		return
	}

	eventJSON, err := json.Marshal(todoEvent{Action: action, Todo: todo})
	if err != nil {
		logger.Error().Err(err).Msgf("Error marshalling %s event for todo %d", action, todo.TaskID)
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("todo-%s-%d", action, todo.TaskID)),
		Value: eventJSON,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for todo %d", action, todo.TaskID)
	}
}
