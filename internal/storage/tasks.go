package storage

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todo/internal/model"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/todos.schema.json
var todosSchemaJSON []byte

//go:embed schema/task.schema.json
var taskSchemaJSON []byte

const (
	todosSchemaURL = "https://todo.local/schema/todos.schema.json"
	taskSchemaURL  = "https://todo.local/schema/task.schema.json"
)

var (
	todosSchema = jsonschema.MustCompileString(todosSchemaURL, string(todosSchemaJSON))
	taskSchema  = jsonschema.MustCompileString(taskSchemaURL, string(taskSchemaJSON))
)

// TaskRepository stores the whole ordered task list as one JSON document
// under a fixed key.
type TaskRepository struct {
	kv     KVStore
	key    string
	logger *log.Logger
}

func NewTaskRepository(kv KVStore, key string, logger *log.Logger) *TaskRepository {
	if strings.TrimSpace(key) == "" {
		key = DefaultTodosKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TaskRepository{kv: kv, key: key, logger: logger}
}

func (r *TaskRepository) Key() string { return r.key }

// Load returns the stored list. An absent key or a payload that is not a
// list yields an empty list and no error; records that cannot be used are
// skipped with a warning. Only backend failures are returned.
func (r *TaskRepository) Load(ctx context.Context) ([]model.Task, error) {
	raw, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.key, err)
	}
	tasks, issues, err := DecodeTasks([]byte(raw))
	if err != nil {
		r.logger.Warn("discarding malformed todo list", "key", r.key, "err", err)
		return []model.Task{}, nil
	}
	for _, issue := range issues {
		r.logger.Warn("repairing stored todo", "key", r.key, "err", issue)
	}
	return tasks, nil
}

// Save writes the full list, refusing one that would not load back intact.
func (r *TaskRepository) Save(ctx context.Context, tasks []model.Task) error {
	payload, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, r.key, string(payload)); err != nil {
		return fmt.Errorf("write %s: %w", r.key, err)
	}
	return nil
}

func EncodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	if err := model.ValidateList(tasks); err != nil {
		return nil, fmt.Errorf("encode todos: %w", err)
	}
	return json.Marshal(tasks)
}

// DecodeTasks parses a stored payload. A payload that is not a list of
// objects is an error. Within the list, a record that fails the task schema
// is dropped and a record whose id was already seen gets a fresh id above the
// largest one; each of these is reported in issues. Text is trimmed.
func DecodeTasks(raw []byte) ([]model.Task, []error, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("parse todos: %w", err)
	}
	if err := todosSchema.Validate(doc); err != nil {
		return nil, nil, fmt.Errorf("validate todos: %w", err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, nil, fmt.Errorf("decode todos: %w", err)
	}
	items := doc.([]any)

	var issues []error
	tasks := make([]model.Task, 0, len(records))
	for i, rec := range records {
		if err := taskSchema.Validate(items[i]); err != nil {
			issues = append(issues, fmt.Errorf("record %d dropped: %w", i, err))
			continue
		}
		var t model.Task
		if err := json.Unmarshal(rec, &t); err != nil {
			issues = append(issues, fmt.Errorf("record %d dropped: %w", i, err))
			continue
		}
		t.Text = strings.TrimSpace(t.Text)
		tasks = append(tasks, t)
	}

	var maxID int64
	for _, t := range tasks {
		maxID = max(maxID, t.ID)
	}
	seen := make(map[int64]struct{}, len(tasks))
	for i := range tasks {
		if _, dup := seen[tasks[i].ID]; dup {
			maxID++
			issues = append(issues, fmt.Errorf("record %q: duplicate id %d renumbered to %d", tasks[i].Text, tasks[i].ID, maxID))
			tasks[i].ID = maxID
		}
		seen[tasks[i].ID] = struct{}{}
	}
	return tasks, issues, nil
}
