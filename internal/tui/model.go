package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dailyquest/internal/engine"
	"dailyquest/internal/storage"
	"dailyquest/internal/ui"
)

type boardModel struct {
	ctx      context.Context
	svc      *engine.Service
	playerID int64

	width  int
	height int

	player *storage.Player
	tasks  []storage.Task

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	player *storage.Player
	tasks  []storage.Task
	err    error
}

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, playerID int64) boardModel {
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		playerID: playerID,
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		// Crossing 17:00 since the last check clears the board first.
		if _, err := m.svc.CheckAndReset(m.ctx, m.playerID, time.Now().UTC()); err != nil {
			return loadedMsg{err: err}
		}
		p, err := m.svc.PlayerRepo().Get(m.ctx, m.playerID)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.TaskRepo().ListByPlayer(m.ctx, m.playerID)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{player: p, tasks: tasks}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, m.playerID, id)
		return completedMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.player = msg.player
		m.tasks = msg.tasks
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		switch {
		case msg.res.AlreadyDone:
			m.lastLog = "Already done."
		case msg.res.EliteAwarded:
			m.lastLog = fmt.Sprintf("All tasks done — %s! +%d gold, +%d XP", ui.BadgeElite, engine.TaskRewardGold, engine.TaskRewardXP)
		case msg.res.Capped:
			m.lastLog = fmt.Sprintf("%s — task marked, no reward", ui.BadgeCapped)
		default:
			m.lastLog = fmt.Sprintf("Done! +%d gold, +%d XP (daily level %d)", engine.TaskRewardGold, engine.TaskRewardXP, msg.res.Player.DailyLevel)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if m.selected >= 0 && m.selected < len(m.tasks) {
				return m, m.completeCmd(m.tasks[m.selected].ID)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.loading {
		return "Loading…\n"
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.taskListView())
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(m.lastLog))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("enter: complete  j/k: move  r: refresh  q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m boardModel) headerView() string {
	p := m.player
	name := p.Name
	if p.EliteAwardedAt != nil {
		name += " " + ui.BadgeElite
	}
	stats := fmt.Sprintf("%s %d   %s %d XP   %s level %d/%d",
		ui.IconGold, p.Gold,
		ui.IconSparkle, p.LifetimeXP,
		ui.IconTask, p.DailyLevel, engine.DailyTaskCap)
	if p.ImmunityExpiresAt != nil && time.Now().UTC().Before(*p.ImmunityExpiresAt) {
		stats += "   " + ui.IconPotion + " immune until " + p.ImmunityExpiresAt.Local().Format("Jan 2 15:04")
	}
	return ui.Panel.Render(ui.Heading(ui.IconSword, name) + "\n" + stats)
}

func (m boardModel) taskListView() string {
	if len(m.tasks) == 0 {
		return ui.Muted.Render("No tasks today. Add some with `dq add`.")
	}
	var b strings.Builder
	for i, t := range m.tasks {
		line := fmt.Sprintf("%s %s", ui.TaskMark(t.IsDone), t.Title)
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
