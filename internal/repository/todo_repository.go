package repository

import (
	"context"
	"database/sql"

	"todolist-service/internal/entity"
)

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db}
}

// CreateTodo inserts a task with the given name. Description stays NULL and
// complete_status takes its column default.
func (r *TodoRepository) CreateTodo(ctx context.Context, name string) (*entity.Todo, error) {
	query := `INSERT INTO todos (task_name) VALUES (?)`
	res, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &entity.Todo{TaskID: int(id), TaskName: name}, nil
}

// ListTodos returns every task. No ORDER BY: callers get storage order.
func (r *TodoRepository) ListTodos(ctx context.Context) ([]entity.Todo, error) {
	query := `SELECT task_id, task_name, COALESCE(task_description, ''), complete_status FROM todos`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []entity.Todo
	for rows.Next() {
		todo := entity.Todo{}
		err := rows.Scan(&todo.TaskID, &todo.TaskName, &todo.TaskDescription, &todo.CompleteStatus)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

func (r *TodoRepository) GetTodoByID(ctx context.Context, id int) (*entity.Todo, error) {
	query := `SELECT task_id, task_name, COALESCE(task_description, ''), complete_status FROM todos WHERE task_id = ?`
	todo := &entity.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&todo.TaskID, &todo.TaskName, &todo.TaskDescription, &todo.CompleteStatus)
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// ToggleComplete flips the completion flag of the task with the given id.
// Returns sql.ErrNoRows if the id is absent.
func (r *TodoRepository) ToggleComplete(ctx context.Context, id int) (*entity.Todo, error) {
	todo, err := r.GetTodoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	todo.CompleteStatus = !todo.CompleteStatus

	query := `UPDATE todos SET complete_status = ? WHERE task_id = ?`
	_, err = r.db.ExecContext(ctx, query, todo.CompleteStatus, id)
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// UpdateDescription overwrites task_description of the task with the given id.
func (r *TodoRepository) UpdateDescription(ctx context.Context, id int, description string) (*entity.Todo, error) {
	todo, err := r.GetTodoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	todo.TaskDescription = description

	query := `UPDATE todos SET task_description = ? WHERE task_id = ?`
	_, err = r.db.ExecContext(ctx, query, description, id)
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// SetCompleteStatus writes an explicit completion value for the task with the
// given id.
func (r *TodoRepository) SetCompleteStatus(ctx context.Context, id int, status bool) (*entity.Todo, error) {
	todo, err := r.GetTodoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	todo.CompleteStatus = status

	query := `UPDATE todos SET complete_status = ? WHERE task_id = ?`
	_, err = r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// DeleteTodo removes the task with the given id. Deleting an id that does not
// exist is a no-op.
func (r *TodoRepository) DeleteTodo(ctx context.Context, id int) error {
	query := `DELETE FROM todos WHERE task_id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
