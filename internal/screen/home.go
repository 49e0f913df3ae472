// Package screen holds the state behind the task list screen: the Home
// container that owns the task store, and the per-row edit controllers.
// Renderers only talk to it through TaskActions and the Rows transitions.
package screen

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store/taskstore"
)

const (
	DuplicateTitle   = "Task already added"
	DuplicateMessage = "You cannot add a task with the same name"
	RemoveTitle      = "Remove item"
	RemoveMessage    = "Are you sure you want to remove this item?"
)

// TaskActions is the set of mutations a rendered row or input may request.
type TaskActions interface {
	AddTask(title string) bool
	ToggleTaskDone(id int64)
	RemoveTask(id int64)
	EditTask(id int64, newTitle string)
}

// Alerter presents prompts on behalf of the screen. Confirm calls onConfirm
// only if the user accepts; declining does nothing.
type Alerter interface {
	Alert(title, message string)
	Confirm(title, message string, onConfirm func())
}

// Home is the screen-level state container.
type Home struct {
	store  *taskstore.Store
	alerts Alerter
	log    *log.Logger
}

var _ TaskActions = (*Home)(nil)

func NewHome(store *taskstore.Store, alerts Alerter, logger *log.Logger) *Home {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Home{store: store, alerts: alerts, log: logger}
}

func (h *Home) Tasks() []model.Task { return h.store.Tasks() }
func (h *Home) Count() int          { return h.store.Len() }

// AddTask reports whether the task was added. A duplicate title is shown to
// the user and otherwise ignored.
func (h *Home) AddTask(title string) bool {
	t, err := h.store.Add(title)
	if errors.Is(err, taskstore.ErrDuplicateTitle) {
		h.log.Debug("add rejected", "title", title, "err", err)
		h.alerts.Alert(DuplicateTitle, DuplicateMessage)
		return false
	}
	h.log.Debug("task added", "id", t.ID)
	return true
}

func (h *Home) ToggleTaskDone(id int64) {
	if !h.store.ToggleDone(id) {
		h.log.Debug("toggle on unknown task", "id", id)
		return
	}
	h.log.Debug("task toggled", "id", id)
}

func (h *Home) RemoveTask(id int64) {
	h.alerts.Confirm(RemoveTitle, RemoveMessage, func() {
		if h.store.Remove(id) {
			h.log.Debug("task removed", "id", id)
		}
	})
}

func (h *Home) EditTask(id int64, newTitle string) {
	if !h.store.Rename(id, newTitle) {
		h.log.Debug("rename on unknown task", "id", id)
		return
	}
	h.log.Debug("task renamed", "id", id)
}
