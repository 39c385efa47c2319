// Package memory is an in-process document store with the same contract as
// the MongoDB storage. It backs local runs (storage.driver: memory) and tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"todo_service/internal/models"
	"todo_service/internal/storage"

	"github.com/google/uuid"
)

type Storage struct {
	mu sync.RWMutex

	users   map[string]models.User
	byEmail map[string]string

	todos map[string]models.Todo
	order []string
}

func New() *Storage {
	return &Storage{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
		todos:   make(map[string]models.Todo),
	}
}

func (s *Storage) SaveUser(ctx context.Context, name, email string, passHash []byte) (string, error) {
	const op = "storage.memory.SaveUser"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return "", storage.ErrUserExists
	}

	id := uuid.NewString()

	s.users[id] = models.User{
		ID:       id,
		Name:     name,
		Email:    email,
		PassHash: slices.Clone(passHash),
	}
	s.byEmail[email] = id

	return id, nil
}

func (s *Storage) User(ctx context.Context, email string) (models.User, error) {
	const op = "storage.memory.User"

	if err := ctx.Err(); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return s.users[id], nil
}

func (s *Storage) SaveTodo(ctx context.Context, userID, title string) (models.Todo, error) {
	const op = "storage.memory.SaveTodo"

	if err := ctx.Err(); err != nil {
		return models.Todo{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo := models.Todo{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
	}

	s.todos[todo.ID] = todo
	s.order = append(s.order, todo.ID)

	return todo, nil
}

func (s *Storage) Todos(ctx context.Context, userID string) ([]models.Todo, error) {
	const op = "storage.memory.Todos"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]models.Todo, 0)
	for _, id := range s.order {
		if t := s.todos[id]; t.UserID == userID {
			todos = append(todos, t)
		}
	}

	return todos, nil
}

func (s *Storage) Todo(ctx context.Context, id string) (models.Todo, error) {
	const op = "storage.memory.Todo"

	if err := ctx.Err(); err != nil {
		return models.Todo{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.todos[id]
	if !ok {
		return models.Todo{}, storage.ErrTodoNotFound
	}

	return t, nil
}

func (s *Storage) UpdateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	const op = "storage.memory.UpdateTodo"

	if err := ctx.Err(); err != nil {
		return models.Todo{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.todos[todo.ID]
	if !ok || stored.UserID != todo.UserID {
		return models.Todo{}, storage.ErrTodoNotFound
	}

	stored.Title = todo.Title
	stored.Completed = todo.Completed
	s.todos[todo.ID] = stored

	return stored, nil
}

func (s *Storage) DeleteTodo(ctx context.Context, id, userID string) error {
	const op = "storage.memory.DeleteTodo"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.todos[id]
	if !ok || stored.UserID != userID {
		return storage.ErrTodoNotFound
	}

	delete(s.todos, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })

	return nil
}

func (s *Storage) Close(context.Context) error {
	return nil
}
