// Package todo manages todo items scoped to their owner.
package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sl "todo_service/internal/lib/logger"
	"todo_service/internal/models"
	"todo_service/internal/storage"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrForbidden    = errors.New("todo belongs to another user")
)

type Service struct {
	log          *slog.Logger
	todoSaver    TodoSaver
	todoProvider TodoProvider
}

type TodoSaver interface {
	SaveTodo(ctx context.Context, userID, title string) (models.Todo, error)
	UpdateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	DeleteTodo(ctx context.Context, id, userID string) error
}

type TodoProvider interface {
	Todos(ctx context.Context, userID string) ([]models.Todo, error)
	Todo(ctx context.Context, id string) (models.Todo, error)
}

func New(log *slog.Logger, todoSaver TodoSaver, todoProvider TodoProvider) *Service {
	return &Service{
		log:          log,
		todoSaver:    todoSaver,
		todoProvider: todoProvider,
	}
}

func (s *Service) List(ctx context.Context, ownerID string) ([]models.Todo, error) {
	const op = "todo.List"

	todos, err := s.todoProvider.Todos(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list todos", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if todos == nil {
		todos = []models.Todo{}
	}

	return todos, nil
}

func (s *Service) Create(ctx context.Context, ownerID, title string) (models.Todo, error) {
	const op = "todo.Create"

	log := s.log.With(slog.String("op", op), slog.String("uid", ownerID))

	todo, err := s.todoSaver.SaveTodo(ctx, ownerID, title)
	if err != nil {
		log.Error("failed to save todo", sl.Err(err))

		return models.Todo{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("todo created", slog.String("todo_id", todo.ID))

	return todo, nil
}

// Update sets completed when it is non-nil and leaves the flag untouched otherwise.
func (s *Service) Update(ctx context.Context, ownerID, todoID string, completed *bool) (models.Todo, error) {
	const op = "todo.Update"

	log := s.log.With(slog.String("op", op), slog.String("uid", ownerID), slog.String("todo_id", todoID))

	todo, err := s.owned(ctx, log, ownerID, todoID)
	if err != nil {
		return models.Todo{}, fmt.Errorf("%s: %w", op, err)
	}

	if completed != nil {
		todo.Completed = *completed
	}

	updated, err := s.todoSaver.UpdateTodo(ctx, todo)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			return models.Todo{}, fmt.Errorf("%s: %w", op, ErrTodoNotFound)
		}

		log.Error("failed to update todo", sl.Err(err))

		return models.Todo{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("todo updated", slog.Bool("completed", updated.Completed))

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, todoID string) error {
	const op = "todo.Delete"

	log := s.log.With(slog.String("op", op), slog.String("uid", ownerID), slog.String("todo_id", todoID))

	if _, err := s.owned(ctx, log, ownerID, todoID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.todoSaver.DeleteTodo(ctx, todoID, ownerID); err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			return fmt.Errorf("%s: %w", op, ErrTodoNotFound)
		}

		log.Error("failed to delete todo", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("todo deleted")

	return nil
}

// owned loads the todo and checks that ownerID owns it.
func (s *Service) owned(ctx context.Context, log *slog.Logger, ownerID, todoID string) (models.Todo, error) {
	todo, err := s.todoProvider.Todo(ctx, todoID)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			log.Warn("todo not found")

			return models.Todo{}, ErrTodoNotFound
		}

		log.Error("failed to get todo", sl.Err(err))

		return models.Todo{}, err
	}

	if todo.UserID != ownerID {
		log.Warn("todo owner mismatch")

		return models.Todo{}, ErrForbidden
	}

	return todo, nil
}
