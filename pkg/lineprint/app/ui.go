package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/src-lua/cptools/pkg/lineprint"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true).Render
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render
)

type model struct {
	scanPath string
	root     DirPrint // kept around for a future tree view
	all      map[string]lineprint.FilePrint
	pairSims []lineprint.PairSim
	dups     []lineprint.Dup
	cursor   int              // points to index within pairSims
	selected map[int]struct{} // points to index within pairSims
	log      io.Writer
}

func newModel(scanPath string, log io.Writer) model {
	return model{
		scanPath: scanPath,
		all:      make(map[string]lineprint.FilePrint),
		selected: make(map[int]struct{}),
		log:      log,
	}
}

func (m *model) scan() {
	*m = newModel(m.scanPath, m.log)
	// user input could be absolute or relative, and may include sections such
	// as ./ and /../ which add no meaning. make it canonical so the output is
	// unambiguous even when shared without context about the working directory.
	dir, err := filepath.Abs(m.scanPath)
	perr(err)
	f := os.DirFS(dir)
	root, all, err := WalkFS(f, dir, lineprint.Md5FingerPrint, m.log)
	if err != nil {
		fmt.Fprintln(m.log, "ERR scan failed:", err)
		return
	}
	m.root = root
	m.all = all
	m.pairSims = lineprint.GetPairSims(all)
	m.dups = lineprint.Dups(all)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:

		switch msg.String() {

		case "s":
			m.scan()

		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.pairSims)-1 {
				m.cursor++
			}

		case "enter", " ":
			_, ok := m.selected[m.cursor]
			if ok {
				delete(m.selected, m.cursor)
			} else {
				m.selected[m.cursor] = struct{}{}
			}
		}
	}

	return m, nil
}

func (m model) View() string {
	s := titleStyle(fmt.Sprintf("%s: %d files hashed, %d duplicated blocks", m.scanPath, len(m.all), len(m.dups))) + "\n\n"

	for i, ps := range m.pairSims {

		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		checked := " "
		if _, ok := m.selected[i]; ok {
			checked = "x"
		}

		s += fmt.Sprintf("%s [%s] Path1: %s\n      Path2: %s\nSimilarity: %s\n\n", cursor, checked, ps.Path1, ps.Path2, ps.Sim)
	}

	s += helpStyle("\n up/down/j/k : navigate - s: scan - q: quit\n")

	return s
}
