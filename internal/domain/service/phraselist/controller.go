package phraselist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/logx"
)

// DefaultLimit — сколько фраз грузит список без пагинации (REST-Range 0-100).
const DefaultLimit = 100

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var (
	ErrBusy             = errors.New("phrase list: request in flight")
	ErrNoForm           = errors.New("phrase list: form is not open")
	ErrNoPendingRemoval = errors.New("phrase list: nothing to remove")
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateErrored State = "errored"
)

type phraseStore interface {
	List(ctx context.Context, page, pageSize int) ([]entity.Phrase, error)
	Create(ctx context.Context, text string) (entity.Phrase, error)
	Update(ctx context.Context, id value.PhraseID, text string) error
	Delete(ctx context.Context, id value.PhraseID) error
}

type Option func(*Controller)

// WithPageSize включает постраничный режим.
func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.pageSize = size
			c.paged = true
		}
	}
}

// Controller владеет текущей страницей фраз и проводит через хранилище
// создание, изменение и удаление. После каждой успешной мутации страница
// перечитывается целиком.
//
// Пока запрос в полёте, остальные операции возвращают ErrBusy:
// кнопки в интерфейсе в это время выключены.
type Controller struct {
	store    phraseStore
	pageSize int
	paged    bool

	mu       sync.Mutex
	state    State
	items    []entity.Phrase
	page     int
	lastFull bool
	busy     bool
	form     *Form
	pending  *entity.Phrase
	message  *Message
}

func NewController(store phraseStore, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		pageSize: DefaultLimit,
		state:    StateIdle,
		page:     1,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// View: снимок состояния для отрисовки.
type View struct {
	State          State
	Items          []entity.Phrase
	Page           int
	PageSize       int
	Paged          bool
	CanPrev        bool
	CanNext        bool
	Busy           bool
	Message        *Message
	Form           *Form
	PendingRemoval *entity.Phrase
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:    c.state,
		Items:    slices.Clone(c.items),
		Page:     c.page,
		PageSize: c.pageSize,
		Paged:    c.paged,
		CanPrev:  c.canPrev(),
		CanNext:  c.canNext(),
		Busy:     c.busy,
	}

	if c.message != nil {
		m := *c.message
		v.Message = &m
	}

	if c.form != nil {
		f := *c.form
		v.Form = &f
	}

	if c.pending != nil {
		p := *c.pending
		v.PendingRemoval = &p
	}

	return v
}

// Load перечитывает текущую страницу (при первом вызове первую).
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()

	return c.LoadPage(ctx, page)
}

// LoadPage загружает страницу. При ошибке прежний список остаётся на экране.
func (c *Controller) LoadPage(ctx context.Context, page int) error {
	if page < 1 || !c.paged {
		page = 1
	}

	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	return c.load(ctx, page)
}

// NextPage переходит на следующую страницу, если последняя загруженная была
// полной. Если хранилище вернуло пустую страницу, контроллер остаётся на
// месте и выключает "вперёд". Возвращает true, если страница сменилась.
func (c *Controller) NextPage(ctx context.Context) (bool, error) {
	if err := c.begin(); err != nil {
		return false, err
	}
	defer c.end()

	c.mu.Lock()
	if !c.canNext() {
		c.mu.Unlock()
		return false, nil
	}
	next := c.page + 1
	c.mu.Unlock()

	items, err := c.fetch(ctx, next)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateLoaded

	if len(items) == 0 {
		c.lastFull = false
		return false, nil
	}

	c.apply(next, items)

	return true, nil
}

// PrevPage возвращается на предыдущую страницу; на первой ничего не делает.
func (c *Controller) PrevPage(ctx context.Context) (bool, error) {
	if err := c.begin(); err != nil {
		return false, err
	}
	defer c.end()

	c.mu.Lock()
	if !c.canPrev() {
		c.mu.Unlock()
		return false, nil
	}
	prev := c.page - 1
	c.mu.Unlock()

	if err := c.load(ctx, prev); err != nil {
		return false, err
	}

	return true, nil
}

// OpenCreate открывает пустую форму. Хранилище не трогает.
func (c *Controller) OpenCreate() Form {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := NewCreateForm()
	c.form = &f
	c.pending = nil

	return f
}

// OpenEdit открывает форму с текстом фразы. Хранилище не трогает.
func (c *Controller) OpenEdit(p entity.Phrase) Form {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := NewEditForm(p)
	c.form = &f
	c.pending = nil

	return f
}

// Submit закрывает форму и, если пользователь подтвердил ввод, создаёт или
// обновляет фразу. Отмена ничего не отправляет в хранилище.
func (c *Controller) Submit(ctx context.Context, result FormResult) error {
	c.mu.Lock()

	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}

	if c.form == nil {
		c.mu.Unlock()
		return ErrNoForm
	}

	form := *c.form
	c.form = nil

	if !result.Confirmed {
		c.mu.Unlock()
		return nil
	}

	c.busy = true
	page := c.page
	c.mu.Unlock()

	defer c.end()

	var (
		err     error
		success string
	)

	if form.IsEdit() {
		err = c.store.Update(ctx, form.PhraseID(), result.Text)
		success = MsgUpdated
	} else {
		_, err = c.store.Create(ctx, result.Text)
		success = MsgCreated
	}

	if err != nil {
		logger(ctx).Error("phrase save failed",
			slog.String(logx.FieldPhraseID, form.PhraseID().String()),
			logx.Error(err),
		)
		c.setMessage(MessageError, MsgSaveFailed)

		return fmt.Errorf("save phrase: %w", err)
	}

	c.setMessage(MessageSuccess, success)

	return c.load(ctx, page)
}

// RequestRemove — первый шаг удаления: запомнить фразу и спросить
// подтверждение (ConfirmRemoveText).
func (c *Controller) RequestRemove(p entity.Phrase) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return ErrBusy
	}

	c.pending = &p
	c.form = nil

	return nil
}

// ConfirmRemove — второй шаг. Без подтверждения запрос не уходит.
// Если удалена последняя фраза на странице дальше первой, контроллер
// отступает на предыдущую страницу.
func (c *Controller) ConfirmRemove(ctx context.Context, confirmed bool) error {
	c.mu.Lock()

	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}

	if c.pending == nil {
		c.mu.Unlock()
		return ErrNoPendingRemoval
	}

	target := *c.pending
	c.pending = nil

	if !confirmed {
		c.mu.Unlock()
		return nil
	}

	c.busy = true
	page := c.page
	lastOnPage := c.paged && page > 1 && len(c.items) == 1 && c.items[0].ID == target.ID
	c.mu.Unlock()

	defer c.end()

	if err := c.store.Delete(ctx, target.ID); err != nil {
		logger(ctx).Error("phrase delete failed",
			slog.String(logx.FieldPhraseID, target.ID.String()),
			logx.Error(err),
		)
		c.setMessage(MessageError, MsgDeleteFailed)

		return fmt.Errorf("delete phrase: %w", err)
	}

	c.setMessage(MessageSuccess, MsgDeleted)

	if lastOnPage {
		page--
	}

	return c.load(ctx, page)
}

// Remove проводит оба шага удаления; confirm показывает вопрос пользователю.
func (c *Controller) Remove(ctx context.Context, p entity.Phrase, confirm func(prompt string) bool) error {
	if err := c.RequestRemove(p); err != nil {
		return err
	}

	return c.ConfirmRemove(ctx, confirm(ConfirmRemoveText))
}

func (c *Controller) DismissMessage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.message = nil
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return ErrBusy
	}

	c.busy = true

	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.busy = false
}

// load вызывается только между begin и end.
func (c *Controller) load(ctx context.Context, page int) error {
	items, err := c.fetch(ctx, page)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateLoaded
	c.apply(page, items)

	return nil
}

func (c *Controller) fetch(ctx context.Context, page int) ([]entity.Phrase, error) {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	items, err := c.store.List(ctx, page, c.pageSize)
	if err != nil {
		logger(ctx).Error("phrase list load failed", slog.Int(logx.FieldPage, page), logx.Error(err))

		c.mu.Lock()
		c.state = StateErrored
		c.message = &Message{Kind: MessageError, Text: MsgLoadFailed}
		c.mu.Unlock()

		return nil, fmt.Errorf("load page %d: %w", page, err)
	}

	return items, nil
}

func (c *Controller) apply(page int, items []entity.Phrase) {
	c.items = items
	c.page = page
	c.lastFull = len(items) >= c.pageSize
}

func (c *Controller) setMessage(kind MessageKind, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.message = &Message{Kind: kind, Text: text}
}

func (c *Controller) canPrev() bool {
	return c.paged && c.page > 1
}

func (c *Controller) canNext() bool {
	return c.paged && c.state == StateLoaded && c.lastFull
}
