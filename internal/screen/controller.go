// Package screen implements the single editing screen: two text fields, three
// save buttons and a transient status toast. Every handler runs synchronously
// on one event loop; the only asynchronous edge is the storage permission
// request, whose answer is delivered through a callback on a later loop turn.
package screen

import (
	"log/slog"
	"time"

	"github.com/zoro11031/datasave/internal/permission"
	"github.com/zoro11031/datasave/internal/storage"
	"github.com/zoro11031/datasave/internal/ui"
)

// Status messages shown after a button press
const (
	MsgSavedInternal = "saved to internal storage succeeded"
	MsgAppended      = "append succeeded"
	MsgSavedExternal = "saved to SDCard succeeded"
	MsgFillIn        = "please fill in file name and content"
)

// Draft is the transient state of the screen. It is never persisted.
type Draft struct {
	FileName          string
	Content           string
	PermissionGranted bool
}

// Storage is the set of storage operations the screen drives
type Storage interface {
	WriteInternal(name, content string) error
	AppendInternal(name, content string) error
	WriteExternal(name, content string) error
}

// Permissions answers and requests runtime permissions
type Permissions interface {
	Check(name permission.Name) bool
	State(name permission.Name) permission.State
	Request(name permission.Name, callback permission.Callback) error
	Dispatch() int
}

// Controller handles button presses against a Draft
type Controller struct {
	draft    *Draft
	store    Storage
	perms    Permissions
	logger   *slog.Logger
	toast    ui.Toast
	toastFor time.Duration
	now      func() time.Time
}

// Options configures a Controller
type Options struct {
	Store         Storage
	Permissions   Permissions
	Logger        *slog.Logger
	ToastDuration time.Duration
	Now           func() time.Time
}

// NewController creates a Controller with an empty Draft
func NewController(opts Options) *Controller {
	c := &Controller{
		draft:    &Draft{},
		store:    opts.Store,
		perms:    opts.Permissions,
		logger:   opts.Logger,
		toastFor: opts.ToastDuration,
		now:      opts.Now,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.toastFor <= 0 {
		c.toastFor = ui.ShortToast
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Draft returns the screen state
func (c *Controller) Draft() *Draft {
	return c.draft
}

// SetFileName replaces the file name field
func (c *Controller) SetFileName(name string) {
	c.draft.FileName = name
}

// SetContent replaces the content field
func (c *Controller) SetContent(content string) {
	c.draft.Content = content
}

// Toast returns the most recent status message
func (c *Controller) Toast() ui.Toast {
	return c.toast
}

// SaveInternal overwrites the named file in internal storage
func (c *Controller) SaveInternal() {
	c.report(c.store.WriteInternal(c.draft.FileName, c.draft.Content), MsgSavedInternal)
}

// AppendInternal appends the content to the named file in internal storage
func (c *Controller) AppendInternal() {
	c.report(c.store.AppendInternal(c.draft.FileName, c.draft.Content), MsgAppended)
}

// SaveExternal writes the named file to the external documents directory.
// Without the storage permission it only requests it; the save is not
// remembered, so the user presses the button again once it is granted.
func (c *Controller) SaveExternal() {
	if !c.perms.Check(permission.WriteExternalStorage) {
		if err := c.perms.Request(permission.WriteExternalStorage, c.OnPermissionResult); err != nil {
			c.logger.Warn("storage permission request failed", "err", err)
		}
		return
	}
	c.report(c.store.WriteExternal(c.draft.FileName, c.draft.Content), MsgSavedExternal)
}

// OnPermissionResult records the outcome of a permission request. It does not
// retry any save.
func (c *Controller) OnPermissionResult(granted bool) {
	c.draft.PermissionGranted = granted
}

// PermissionState returns the storage permission state for display
func (c *Controller) PermissionState() permission.State {
	return c.perms.State(permission.WriteExternalStorage)
}

// DeliverPermissionResults runs pending permission callbacks
func (c *Controller) DeliverPermissionResults() int {
	return c.perms.Dispatch()
}

func (c *Controller) report(err error, success string) {
	toast := ui.Toast{Message: success, Kind: ui.ToastSuccess, Shown: c.now(), For: c.toastFor}
	if !storage.Succeeded(err) {
		if storage.IsValidation(err) {
			c.logger.Debug("save rejected", "reason", "empty file name or content")
		}
		toast.Message = MsgFillIn
		toast.Kind = ui.ToastFailure
	}
	c.toast = toast
}
