package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/Lohit244/task-buddy/core"
)

type DB struct {
	log  *slog.Logger
	conn *sqlx.DB
}

func New(log *slog.Logger, address string) (*DB, error) {
	db, err := sqlx.Connect("pgx", address)
	if err != nil {
		log.Error("connection problem", "address", address, "error", err)
		return nil, err
	}
	return &DB{log: log, conn: db}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Users

func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (core.User, error) {
	const q = `
		INSERT INTO users(name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;
	`

	u := core.User{Name: name, Email: email, PasswordHash: passwordHash}
	if err := db.conn.QueryRowxContext(ctx, q, name, email, passwordHash).Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return core.User{}, core.ErrEmailInUse
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (db *DB) UserByID(ctx context.Context, id int64) (core.User, error) {
	const q = `SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`

	var u core.User
	if err := db.conn.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (db *DB) UserByEmail(ctx context.Context, email string) (core.User, error) {
	const q = `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`

	var u core.User
	if err := db.conn.GetContext(ctx, &u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (db *DB) UsersByIDs(ctx context.Context, ids []int64) ([]core.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q, args, err := sqlx.In(`SELECT id, name, email, password_hash, created_at FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}

	var out []core.User
	if err := db.conn.SelectContext(ctx, &out, db.conn.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return out, nil
}

func (db *DB) SearchUsers(ctx context.Context, name string, limit, offset int) ([]core.User, error) {
	const q = `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY lower(name) ASC, id ASC
		LIMIT $2 OFFSET $3;
	`

	var out []core.User
	if err := db.conn.SelectContext(ctx, &out, q, escapeLike(name), limit, offset); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so the search pattern only
// matches as a literal substring.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Tasks

// CreateTask writes the task row and its assignee rows in one transaction.
func (db *DB) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" || t.CreatedBy == 0 || len(t.AssigneeIDs) == 0 {
		return core.Task{}, core.ErrInvalidArgs
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return core.Task{}, fmt.Errorf("begin insert task: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT INTO tasks(name, description, notes, created_by, status, progress)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at;
	`

	err = tx.QueryRowxContext(ctx, q, t.Name, t.Description, t.Notes, t.CreatedBy, string(t.Status), t.Progress).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return core.Task{}, core.ErrUserNotFound
		}
		if isCheckViolation(err) {
			return core.Task{}, core.ErrInvalidArgs
		}
		return core.Task{}, fmt.Errorf("insert task: %w", err)
	}

	if err := insertAssignees(ctx, tx, t.ID, t.AssigneeIDs); err != nil {
		return core.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return core.Task{}, fmt.Errorf("commit insert task: %w", err)
	}
	return t, nil
}

func (db *DB) TaskByID(ctx context.Context, id int64) (core.Task, error) {
	const q = `
		SELECT id, name, description, notes, created_by, status, progress, created_at, updated_at
		FROM tasks
		WHERE id = $1;
	`

	var t core.Task
	if err := db.conn.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}

	if err := db.conn.SelectContext(ctx, &t.AssigneeIDs,
		`SELECT user_id FROM task_assignees WHERE task_id = $1 ORDER BY user_id ASC`, id); err != nil {
		return core.Task{}, fmt.Errorf("get task assignees: %w", err)
	}
	return t, nil
}

// UpdateTask persists the mutable fields and inserts any assignees newly
// present in t.AssigneeIDs, all in one transaction.
func (db *DB) UpdateTask(ctx context.Context, t core.Task) (core.Task, error) {
	if t.ID <= 0 {
		return core.Task{}, core.ErrInvalidArgs
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return core.Task{}, fmt.Errorf("begin update task: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		UPDATE tasks
		SET description = $2,
		    notes = $3,
		    status = $4,
		    progress = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING id, name, description, notes, created_by, status, progress, created_at, updated_at;
	`

	var out core.Task
	if err := tx.GetContext(ctx, &out, q, t.ID, t.Description, t.Notes, string(t.Status), t.Progress); err != nil {
		if isCheckViolation(err) {
			return core.Task{}, core.ErrInvalidArgs
		}
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("update task: %w", err)
	}

	if err := insertAssignees(ctx, tx, out.ID, t.AssigneeIDs); err != nil {
		return core.Task{}, err
	}

	if err := tx.SelectContext(ctx, &out.AssigneeIDs,
		`SELECT user_id FROM task_assignees WHERE task_id = $1 ORDER BY user_id ASC`, out.ID); err != nil {
		return core.Task{}, fmt.Errorf("get task assignees: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Task{}, fmt.Errorf("commit update task: %w", err)
	}
	return out, nil
}

func (db *DB) TasksCreatedBy(ctx context.Context, userID int64) ([]core.Task, error) {
	const q = `
		SELECT id, name, description, notes, created_by, status, progress, created_at, updated_at
		FROM tasks
		WHERE created_by = $1
		ORDER BY id ASC;
	`

	var out []core.Task
	if err := db.conn.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, fmt.Errorf("list created tasks: %w", err)
	}
	if err := db.attachAssignees(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (db *DB) TasksAssignedTo(ctx context.Context, userID int64) ([]core.Task, error) {
	const q = `
		SELECT t.id, t.name, t.description, t.notes, t.created_by, t.status, t.progress, t.created_at, t.updated_at
		FROM tasks t
		JOIN task_assignees ta ON ta.task_id = t.id
		WHERE ta.user_id = $1
		ORDER BY t.id ASC;
	`

	var out []core.Task
	if err := db.conn.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, fmt.Errorf("list assigned tasks: %w", err)
	}
	if err := db.attachAssignees(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (db *DB) attachAssignees(ctx context.Context, tasks []core.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}

	q, args, err := sqlx.In(`SELECT task_id, user_id FROM task_assignees WHERE task_id IN (?) ORDER BY user_id ASC`, ids)
	if err != nil {
		return fmt.Errorf("build assignees query: %w", err)
	}

	var rows []struct {
		TaskID int64 `db:"task_id"`
		UserID int64 `db:"user_id"`
	}
	if err := db.conn.SelectContext(ctx, &rows, db.conn.Rebind(q), args...); err != nil {
		return fmt.Errorf("list assignees: %w", err)
	}

	byTask := map[int64][]int64{}
	for _, r := range rows {
		byTask[r.TaskID] = append(byTask[r.TaskID], r.UserID)
	}
	for i := range tasks {
		tasks[i].AssigneeIDs = byTask[tasks[i].ID]
	}
	return nil
}

func insertAssignees(ctx context.Context, tx *sqlx.Tx, taskID int64, userIDs []int64) error {
	const q = `
		INSERT INTO task_assignees(task_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`

	for _, userID := range userIDs {
		if _, err := tx.ExecContext(ctx, q, taskID, userID); err != nil {
			if isForeignKeyViolation(err) {
				return core.ErrUserNotFound
			}
			return fmt.Errorf("insert assignee: %w", err)
		}
	}
	return nil
}

// pg helpers

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
