package tui

import (
	"context"
	"fmt"
	"strings"

	"arbor/internal/adapters/svg"
	"arbor/internal/adapters/tui/styles"
	"arbor/internal/application"
	"arbor/internal/domain"
	"arbor/internal/mode"
)

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var body string
	switch a.overlay {
	case overlayPalette:
		body = a.paletteView()
	case overlaySearch:
		body = a.searchView()
	case overlayHelp:
		body = a.helpView()
	default:
		body = a.mapView()
	}

	return styles.App.Render(body + "\n\n" + a.statusBar())
}

// mapView renders the tree as an indented outline with the selection
// highlighted and the insert-mode editor inline on the selected node.
func (a *App) mapView() string {
	ctx := context.Background()
	nodes, err := a.session.Tree().Store().All(ctx)
	if err != nil || len(nodes) == 0 {
		return styles.MutedText.Render("empty map — press a to add a node")
	}

	root, ok := domain.FindRoot(nodes)
	if !ok {
		return styles.MutedText.Render("empty map")
	}

	editing := a.modes.Current() == mode.Insert
	var sb strings.Builder
	a.renderNode(&sb, nodes, root, 0, editing)
	return strings.TrimRight(sb.String(), "\n")
}

func (a *App) renderNode(sb *strings.Builder, nodes []domain.Node, node domain.Node, depth int, editing bool) {
	indent := styles.TreeBranch.Render(strings.Repeat("│ ", depth))

	label := node.Content
	if label == "" {
		label = "·"
	}

	switch {
	case node.ID == a.session.Selection() && editing:
		label = styles.NodeEditing.Render(a.editor.View())
	case node.ID == a.session.Selection():
		label = styles.NodeSelected.Render(" " + label + " ")
	case node.IsRoot():
		label = styles.NodeRoot.Render(label)
	default:
		label = styles.Node.Render(label)
	}

	sb.WriteString(indent + label + "\n")
	for _, child := range domain.ChildrenOf(nodes, node.ID) {
		a.renderNode(sb, nodes, child, depth+1, editing)
	}
}

func (a *App) statusBar() string {
	modeLabel := styles.StatusMode.Render(strings.ToUpper(a.modes.Current().String()))

	parts := []string{modeLabel}
	if pending := a.engine.Pending(); len(pending) > 0 {
		parts = append(parts, styles.StatusPending.Render(pending.String()))
	}
	if a.zoom != 1.0 || a.panX != 0 || a.panY != 0 {
		parts = append(parts, styles.StatusText.Render(
			fmt.Sprintf("zoom %.0f%% pan %.0f,%.0f", a.zoom*100, a.panX, a.panY)))
	}
	if notice := a.session.Notice(); notice != nil {
		if notice.Level == application.NoticeError {
			parts = append(parts, styles.ErrorMsg.Render(notice.Text))
		} else {
			parts = append(parts, styles.Success.Render(notice.Text))
		}
	} else {
		parts = append(parts, styles.StatusText.Render("? help · mod+p palette"))
	}
	return strings.Join(parts, " ")
}

func (a *App) paletteView() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Command Palette") + "\n")
	sb.WriteString(styles.InputField.Render(a.paletteInput.View()) + "\n\n")

	items := a.palette.Items()
	if len(items) == 0 {
		sb.WriteString(styles.MutedText.Render("no matching commands"))
		return sb.String()
	}
	for i, item := range items {
		line := item.Command.Title
		if keys := bindingHint(item.Command.Keys, item.Command.Chord); keys != "" {
			line += "  " + styles.HelpKey.Render(keys)
		}
		if i == a.palette.Cursor() {
			line = styles.NodeSelected.Render(" " + line + " ")
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func bindingHint(keys []string, chord string) string {
	all := append([]string{}, keys...)
	if chord != "" {
		all = append(all, chord)
	}
	return strings.Join(all, ", ")
}

func (a *App) searchView() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Search") + "\n")
	sb.WriteString(styles.InputField.Render(a.searchInput.View()) + "\n\n")

	if len(a.results) == 0 {
		sb.WriteString(styles.MutedText.Render("no matches"))
		return sb.String()
	}
	for i, m := range a.results {
		line := highlightMatch(m.Content, m.MatchedIndexes)
		if i == a.resultCursor {
			line = styles.NodeSelected.Render(" " + m.Content + " ")
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// highlightMatch emphasizes the matched runes of a search result.
func highlightMatch(content string, matched []int) string {
	if len(matched) == 0 {
		return content
	}
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}
	var sb strings.Builder
	for i, r := range []rune(content) {
		if set[i] {
			sb.WriteString(styles.SearchMatch.Render(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (a *App) helpView() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Keybindings") + "\n")

	category := ""
	for _, cmd := range a.registry.Commands() {
		hint := bindingHint(cmd.Keys, cmd.Chord)
		if hint == "" {
			continue
		}
		if cmd.Category != category {
			category = cmd.Category
			sb.WriteString("\n" + styles.Title.Render(category) + "\n")
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			styles.HelpKey.Render(fmt.Sprintf("%-12s", hint)),
			styles.HelpDesc.Render(cmd.Title)))
	}
	sb.WriteString("\n" + styles.MutedText.Render("press any key to close"))
	return sb.String()
}

// exportSVG writes the current map to the configured export path.
func (a *App) exportSVG() error {
	nodes, err := a.session.Tree().Store().All(context.Background())
	if err != nil {
		return err
	}
	path := a.exportPath
	if path == "" {
		path = "arbor.svg"
	}
	if err := svg.WriteFile(path, nodes); err != nil {
		return err
	}
	a.session.Notify("exported "+path, application.NoticeInfo)
	return nil
}
