package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mangomedia/mango/catalog"
	"github.com/mangomedia/mango/constant"
	"github.com/mangomedia/mango/icon"
	"github.com/mangomedia/mango/internal/app"
	"github.com/mangomedia/mango/internal/ui"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/playback"
	"github.com/mangomedia/mango/style"
	"github.com/mangomedia/mango/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble holds the screens of the application and the one open
// player visit, if any.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	busy          bool

	keymap *statefulKeymap
	queue  *programDispatcher

	// components
	spinnerC  spinner.Model
	homeC     list.Model
	historyC  list.Model
	progressC progress.Model
	helpC     help.Model

	catalog    *catalog.Catalog
	subscribed bool

	visit       *app.Visit
	surface     *app.Surface
	coordinator *playback.Coordinator

	progressStatus string
	lastError      error

	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current state unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, playerState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.homeC.SetSize(listWidth, listHeight)
	b.homeC.Help.Width = listWidth

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.progressC.Width = max(listWidth-30, 10)

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) refreshHomeTitle() {
	if b.subscribed {
		b.homeC.Title = fmt.Sprintf("Home %s subscribed", icon.Get(icon.Subscribed))
		b.homeC.Styles.Title = b.homeC.Styles.Title.Background(style.ContentColor)
		return
	}
	b.homeC.Title = fmt.Sprintf("Home %s with ads", icon.Get(icon.Unsubscribed))
	b.homeC.Styles.Title = b.homeC.Styles.Title.Background(style.AccentColor)
}

func newBubble(options *Options) *statefulBubble {
	if options.Catalog == nil {
		options.Catalog = catalog.New(viper.GetString(key.CatalogSampleURL))
	}

	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		queue:         &programDispatcher{},
		catalog:       options.Catalog,
		notifier:      &ui.Model{},
		options:       options,
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = 3 * time.Second
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)
		listC.SetFilteringEnabled(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.homeC = makeList(fmt.Sprintf("Home (v%s)", constant.Version), &listOptions{
		TitleStyle: mo.Some(
			style.Badge(style.AccentColor),
		),
	})
	bubble.homeC.SetItems(lo.Map(bubble.catalog.Thumbnails(), func(t catalog.Thumbnail, _ int) list.Item {
		return &listItem{internal: t}
	}))
	bubble.homeC.SetStatusBarItemName("video", "videos")

	bubble.historyC = makeList("History", &listOptions{
		TitleStyle: mo.Some(
			style.Badge(style.PartialColor),
		),
	})
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
