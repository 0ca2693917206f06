package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/thenoetrevino/trtodo/internal/models"
	"github.com/thenoetrevino/trtodo/internal/storage"
)

const (
	settingDeletedTaskLifespan = "deleted_task_lifespan"
	settingDefaultCategory     = "default_category"
	settingDefaultPriority     = "default_priority"

	metaVersion         = "version"
	metaCurrentCategory = "current_category"
	metaLastSync        = "last_sync"
)

// rowQuerier is satisfied by *sql.Conn and *sql.Tx
type rowQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ============================================================================
// READ
// ============================================================================

func readCategories(ctx context.Context, q rowQuerier) ([]models.Category, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, description, "order", created_at FROM categories ORDER BY id`)
	if err != nil {
		return nil, storage.WrapStorage(err, "query categories")
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var (
			c           models.Category
			description sql.NullString
			createdAt   string
		)
		if err := rows.Scan(&c.ID, &c.Name, &description, &c.Order, &createdAt); err != nil {
			return nil, storage.WrapStorage(err, "scan category")
		}
		c.Description = nullStringToString(description)
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, badTimestamp("category", c.ID, "created_at", createdAt, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.WrapStorage(err, "iterate categories")
	}
	return categories, nil
}

func readTasks(ctx context.Context, q rowQuerier) ([]models.Task, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, title, description, category_id, completed, priority, due_date, "order", created_at, updated_at
		FROM tasks ORDER BY id`)
	if err != nil {
		return nil, storage.WrapStorage(err, "query tasks")
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var (
			t                    models.Task
			description, dueDate sql.NullString
			categoryID           sql.NullInt64
			priority             string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&t.ID, &t.Title, &description, &categoryID, &t.Completed,
			&priority, &dueDate, &t.Order, &createdAt, &updatedAt); err != nil {
			return nil, storage.WrapStorage(err, "scan task")
		}

		t.Description = nullStringToString(description)
		if id := nullInt64ToPtr(categoryID); id != nil {
			t.CategoryID = *id
		}

		// stored tokens are lowercase; anything else is corruption
		p := models.Priority(priority)
		if !p.Valid() {
			return nil, &storage.Error{
				Kind:    storage.KindStorage,
				Message: fmt.Sprintf("task %d has invalid priority %q", t.ID, priority),
				Err:     models.ErrInvalidPriority,
			}
		}
		t.Priority = p

		if dueDate.Valid {
			due, err := parseTime(dueDate.String)
			if err != nil {
				return nil, badTimestamp("task", t.ID, "due_date", dueDate.String, err)
			}
			t.DueDate = &due
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, badTimestamp("task", t.ID, "created_at", createdAt, err)
		}
		if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, badTimestamp("task", t.ID, "updated_at", updatedAt, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.WrapStorage(err, "iterate tasks")
	}
	return tasks, nil
}

// hasTable reports whether the schema currently has table. Rolled back
// databases may be missing any of them.
func hasTable(ctx context.Context, q rowQuerier, table string) (bool, error) {
	rows, err := q.QueryContext(ctx, "SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?", table)
	if err != nil {
		return false, storage.WrapStorage(err, "look up table %s", table)
	}
	defer rows.Close()
	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, storage.WrapStorage(err, "look up table %s", table)
	}
	return found, nil
}

// readKeyValues reads a key/value table. A missing table reads as empty.
func readKeyValues(ctx context.Context, q rowQuerier, table string) (map[string]string, error) {
	values := make(map[string]string)
	if ok, err := hasTable(ctx, q, table); err != nil || !ok {
		return values, err
	}

	rows, err := q.QueryContext(ctx, "SELECT key, value FROM "+table)
	if err != nil {
		return nil, storage.WrapStorage(err, "query %s", table)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, storage.WrapStorage(err, "scan %s", table)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, storage.WrapStorage(err, "iterate %s", table)
	}
	return values, nil
}

func settingsFromValues(values map[string]string) (models.Settings, error) {
	var s models.Settings
	if v, ok := values[settingDeletedTaskLifespan]; ok {
		days, err := strconv.Atoi(v)
		if err != nil {
			return s, storage.WrapStorage(err, "invalid %s value %q", settingDeletedTaskLifespan, v)
		}
		s.DeletedTaskLifespan = &days
	}
	s.DefaultCategory = values[settingDefaultCategory]
	if v, ok := values[settingDefaultPriority]; ok {
		p := models.Priority(v)
		if !p.Valid() {
			return s, &storage.Error{
				Kind:    storage.KindStorage,
				Message: fmt.Sprintf("invalid %s value %q", settingDefaultPriority, v),
				Err:     models.ErrInvalidPriority,
			}
		}
		s.DefaultPriority = p
	}
	return s, nil
}

// applyMeta fills the snapshot-level fields. Missing keys keep the defaults.
func applyMeta(snap *models.Snapshot, values map[string]string) error {
	if v, ok := values[metaVersion]; ok {
		version, err := strconv.Atoi(v)
		if err != nil {
			return storage.WrapStorage(err, "invalid %s value %q", metaVersion, v)
		}
		snap.Version = version
	}
	if v, ok := values[metaCurrentCategory]; ok {
		id, err := strconv.Atoi(v)
		if err != nil {
			return storage.WrapStorage(err, "invalid %s value %q", metaCurrentCategory, v)
		}
		snap.CurrentCategory = &id
	}
	if v, ok := values[metaLastSync]; ok {
		t, err := parseTime(v)
		if err != nil {
			return badTimestamp("snapshot", 0, metaLastSync, v, err)
		}
		snap.LastSync = t
	}
	return nil
}

func badTimestamp(entity string, id int, column, value string, err error) *storage.Error {
	return &storage.Error{
		Kind:    storage.KindStorage,
		Message: fmt.Sprintf("%s %d has invalid %s %q", entity, id, column, value),
		Err:     err,
	}
}

// ============================================================================
// WRITE
// ============================================================================

// replaceAll clears every data table and writes snap in their place
func replaceAll(ctx context.Context, tx *sql.Tx, snap *models.Snapshot) error {
	// children first so the foreign key never dangles
	for _, table := range []string{"snapshot_meta", "settings", "tasks", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, c := range snap.Categories {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, description, "order", created_at) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Name, stringToNull(c.Description), c.Order, formatTime(c.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert category %d: %w", c.ID, err)
		}
	}

	for _, t := range snap.Tasks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, title, description, category_id, completed, priority, due_date, "order", created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, stringToNull(t.Description), categoryIDToNull(t.CategoryID), t.Completed,
			t.Priority.String(), timePtrToNull(t.DueDate), t.Order, formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert task %d: %w", t.ID, err)
		}
	}

	for k, v := range settingsValues(snap.Config) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("failed to insert setting %s: %w", k, err)
		}
	}
	for k, v := range metaValues(snap) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot_meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("failed to insert meta %s: %w", k, err)
		}
	}
	return nil
}

func settingsValues(s models.Settings) map[string]string {
	values := make(map[string]string)
	if s.DeletedTaskLifespan != nil {
		values[settingDeletedTaskLifespan] = strconv.Itoa(*s.DeletedTaskLifespan)
	}
	if s.DefaultCategory != "" {
		values[settingDefaultCategory] = s.DefaultCategory
	}
	if s.DefaultPriority != "" {
		values[settingDefaultPriority] = s.DefaultPriority.String()
	}
	return values
}

func metaValues(snap *models.Snapshot) map[string]string {
	values := map[string]string{
		metaVersion: strconv.Itoa(snap.Version),
	}
	if snap.CurrentCategory != nil {
		values[metaCurrentCategory] = strconv.Itoa(*snap.CurrentCategory)
	}
	if !snap.LastSync.IsZero() {
		values[metaLastSync] = formatTime(snap.LastSync)
	}
	return values
}
