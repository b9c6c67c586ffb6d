package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(30)
	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)
	cardDoneStyle = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)
	highPriorityStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9"))
)

// NewBoardCommand creates the kanban board command.
func NewBoardCommand() *cli.Command {
	return &cli.Command{
		Name:    "board",
		Aliases: []string{"kanban"},
		Usage:   "Show tasks on a kanban board",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "Limit the board to one project",
			},
			&cli.BoolFlag{
				Name:  "live",
				Usage: "Keep the board open and refresh it periodically",
			},
		},
		Action: func(c *cli.Context) error {
			session, err := newSession()
			if err != nil {
				return err
			}

			var projectID *string
			if arg := c.String("project"); arg != "" {
				if err := session.FetchProjects(); err != nil {
					return err
				}
				id, err := matchID(arg, storeIDs(session.Projects))
				if err != nil {
					return err
				}
				s := id.String()
				projectID = &s
			}

			if c.Bool("live") {
				model := newBoardModel(session, projectID)
				_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
				return err
			}

			if err := session.FetchTasks(); err != nil {
				fmt.Printf("Error fetching tasks: %v\n", err)
				return err
			}
			fmt.Println(renderBoard(session, projectID))
			return nil
		},
	}
}

// renderBoard draws the three status columns side by side.
func renderBoard(session *store.Session, projectID *string) string {
	columns := []struct {
		title  string
		status string
	}{
		{"📋 TODO", string(models.TaskStatusTODO)},
		{"🔨 IN PROGRESS", string(models.TaskStatusInProgress)},
		{"✅ DONE", string(models.TaskStatusCompleted)},
	}

	rendered := make([]string, 0, len(columns))
	for _, col := range columns {
		tasks := session.Tasks.Find(func(t models.Task) bool {
			if t.Status != col.status {
				return false
			}
			if projectID != nil {
				return t.ProjectID != nil && t.ProjectID.String() == *projectID
			}
			return true
		})

		var body strings.Builder
		body.WriteString(columnTitleStyle.Render(fmt.Sprintf("%s (%d)", col.title, len(tasks))))
		body.WriteString("\n\n")
		if len(tasks) == 0 {
			body.WriteString("—\n")
		}
		for _, t := range tasks {
			line := fmt.Sprintf("%s %s", shortID(t.ID), truncateString(t.Title, 20))
			switch {
			case t.Status == string(models.TaskStatusCompleted):
				line = cardDoneStyle.Render(line)
			case t.Priority == string(models.PriorityHigh):
				line = highPriorityStyle.Render(line)
			}
			body.WriteString(line + "\n")
		}
		rendered = append(rendered, columnStyle.Render(body.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// boardModel is the live-refresh wrapper around the static board view.
type boardModel struct {
	session   *store.Session
	projectID *string
	spinner   spinner.Model
	loading   bool
	err       error
}

type boardRefreshMsg struct{ err error }
type boardTickMsg struct{}

func newBoardModel(session *store.Session, projectID *string) boardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return boardModel{
		session:   session,
		projectID: projectID,
		spinner:   sp,
		loading:   true,
	}
}

func (m boardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return boardRefreshMsg{err: m.session.FetchTasks()}
	}
}

func boardTick() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return boardTickMsg{}
	})
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh())
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.refresh()
		}
	case boardRefreshMsg:
		m.loading = false
		m.err = msg.err
		return m, boardTick()
	case boardTickMsg:
		m.loading = true
		return m, m.refresh()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m boardModel) View() string {
	header := "lifedeck board — q to quit, r to refresh"
	if m.loading {
		header = m.spinner.View() + " refreshing…"
	}
	if m.err != nil {
		header = fmt.Sprintf("⚠️  refresh failed: %v (showing cached board)", m.err)
	}
	return header + "\n\n" + renderBoard(m.session, m.projectID) + "\n"
}
