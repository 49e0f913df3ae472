package screen

import "github.com/idilsaglam/tasks/internal/model"

type EditState int

const (
	Viewing EditState = iota
	Editing
)

func (s EditState) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// EditController is the transient edit state of a single row.
type EditController struct {
	task    model.Task
	state   EditState
	draft   string
	focused bool
}

func NewEditController(t model.Task) *EditController {
	return &EditController{task: t, draft: t.Title}
}

func (c *EditController) TaskID() int64    { return c.task.ID }
func (c *EditController) State() EditState { return c.state }
func (c *EditController) IsEditing() bool  { return c.state == Editing }
func (c *EditController) Draft() string    { return c.draft }
func (c *EditController) Focused() bool    { return c.focused }
func (c *EditController) CanRemove() bool  { return c.state == Viewing }
func (c *EditController) Task() model.Task { return c.task }

// Sync refreshes the stored task. The draft follows the stored title unless
// the row is mid-edit.
func (c *EditController) Sync(t model.Task) {
	c.task = t
	if c.state == Viewing {
		c.draft = t.Title
	}
}

func (c *EditController) StartEdit() {
	if c.state == Editing {
		return
	}
	c.state = Editing
	c.draft = c.task.Title
	c.focused = true
}

func (c *EditController) SetDraft(s string) {
	if c.state != Editing {
		return
	}
	c.draft = s
}

func (c *EditController) Cancel() {
	if c.state != Editing {
		return
	}
	c.draft = c.task.Title
	c.state = Viewing
	c.focused = false
}

// Submit commits the draft through actions and leaves edit mode. The draft is
// committed as-is, including an empty string.
func (c *EditController) Submit(actions TaskActions) {
	if c.state != Editing {
		return
	}
	actions.EditTask(c.task.ID, c.draft)
	c.state = Viewing
	c.focused = false
}

// Rows keeps one EditController per displayed task, keyed by task id.
type Rows struct {
	actions TaskActions
	byID    map[int64]*EditController
}

func NewRows(actions TaskActions) *Rows {
	return &Rows{actions: actions, byID: map[int64]*EditController{}}
}

// Reconcile mounts controllers for new tasks, refreshes existing ones and
// drops controllers whose task is gone.
func (r *Rows) Reconcile(tasks []model.Task) {
	live := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		live[t.ID] = struct{}{}
		if c, ok := r.byID[t.ID]; ok {
			c.Sync(t)
			continue
		}
		r.byID[t.ID] = NewEditController(t)
	}
	for id := range r.byID {
		if _, ok := live[id]; !ok {
			delete(r.byID, id)
		}
	}
}

func (r *Rows) Get(id int64) (*EditController, bool) {
	c, ok := r.byID[id]
	return c, ok
}

func (r *Rows) Len() int { return len(r.byID) }

// Editing returns the controller currently in edit mode, if any.
func (r *Rows) Editing() (*EditController, bool) {
	for _, c := range r.byID {
		if c.IsEditing() {
			return c, true
		}
	}
	return nil, false
}

func (r *Rows) StartEdit(id int64) {
	if c, ok := r.byID[id]; ok {
		c.StartEdit()
	}
}

func (r *Rows) CancelEdit(id int64) {
	if c, ok := r.byID[id]; ok {
		c.Cancel()
	}
}

func (r *Rows) SetDraft(id int64, s string) {
	if c, ok := r.byID[id]; ok {
		c.SetDraft(s)
	}
}

func (r *Rows) SubmitEdit(id int64) {
	if c, ok := r.byID[id]; ok {
		c.Submit(r.actions)
	}
}

// RequestRemove forwards a remove gesture unless the row is being edited.
func (r *Rows) RequestRemove(id int64) bool {
	c, ok := r.byID[id]
	if ok && !c.CanRemove() {
		return false
	}
	r.actions.RemoveTask(id)
	return true
}
