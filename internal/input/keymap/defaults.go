package keymap

import (
	"arbor/internal/application"
	"arbor/internal/domain"
)

// Precondition helpers shared by the default commands.

func hasSelection(ctx *Context) bool {
	return ctx.Session.Selection() != ""
}

func selectionIsNotRoot(ctx *Context) bool {
	node := ctx.Session.SelectedNode(ctx.Ctx)
	return node != nil && !node.IsRoot()
}

func selectionHasChildren(ctx *Context) bool {
	id := ctx.Session.Selection()
	return id != "" && ctx.Session.Tree().FirstChildID(ctx.Ctx, id) != ""
}

func startEditing(ctx *Context) {
	ctx.Modes.EnterInsert()
	ctx.Hooks.Focus()
}

// DefaultCommands builds the full command set. The table is
// reconstructed fresh per session; descriptors are never mutated after
// registration.
func DefaultCommands() []*Command {
	return []*Command{
		// Navigation
		{
			ID:       "nav.next-sibling",
			Title:    "Select Next Sibling",
			Keys:     []string{"j"},
			Category: "Navigate",
			Modes:    InNormal,
			When:     hasSelection,
			Run:      func(ctx *Context) { ctx.Session.SelectNextSibling(ctx.Ctx) },
		},
		{
			ID:       "nav.prev-sibling",
			Title:    "Select Previous Sibling",
			Keys:     []string{"k"},
			Category: "Navigate",
			Modes:    InNormal,
			When:     hasSelection,
			Run:      func(ctx *Context) { ctx.Session.SelectPrevSibling(ctx.Ctx) },
		},
		{
			ID:       "nav.parent",
			Title:    "Select Parent",
			Keys:     []string{"h"},
			Category: "Navigate",
			Modes:    InNormal,
			When:     hasSelection,
			Run:      func(ctx *Context) { ctx.Session.SelectParent(ctx.Ctx) },
		},
		{
			ID:       "nav.first-child",
			Title:    "Select First Child",
			Keys:     []string{"l"},
			Category: "Navigate",
			Modes:    InNormal,
			When:     hasSelection,
			Run:      func(ctx *Context) { ctx.Session.SelectFirstChild(ctx.Ctx) },
		},
		{
			ID:       "nav.root",
			Title:    "Select Root",
			Keys:     []string{"g g"},
			Category: "Navigate",
			Modes:    InNormal,
			When:     func(ctx *Context) bool { return ctx.Session.Tree().HasNodes(ctx.Ctx) },
			Run:      func(ctx *Context) { ctx.Session.SelectRoot(ctx.Ctx) },
		},

		// Structure
		{
			ID:          "node.add-child",
			Title:       "Add Child",
			Description: "Create a child under the selection and edit it",
			Keys:        []string{"a", "tab"},
			Category:    "Edit",
			Modes:       InNormal,
			When:        hasSelection,
			Run: func(ctx *Context) {
				if ctx.Session.CreateChild(ctx.Ctx, "") != nil {
					startEditing(ctx)
				}
			},
		},
		{
			ID:          "node.add-sibling-below",
			Title:       "Add Sibling Below",
			Description: "Create a sibling after the selection and edit it",
			Keys:        []string{"o"},
			Category:    "Edit",
			Modes:       InNormal,
			When:        selectionIsNotRoot,
			Run: func(ctx *Context) {
				if ctx.Session.CreateSiblingBelow(ctx.Ctx, "") != nil {
					startEditing(ctx)
				}
			},
		},
		{
			ID:          "node.add-sibling-above",
			Title:       "Add Sibling Above",
			Description: "Create a sibling before the selection and edit it",
			Keys:        []string{"O"},
			Category:    "Edit",
			Modes:       InNormal,
			When:        selectionIsNotRoot,
			Run: func(ctx *Context) {
				if ctx.Session.CreateSiblingAbove(ctx.Ctx, "") != nil {
					startEditing(ctx)
				}
			},
		},
		{
			ID:          "node.insert-parent",
			Title:       "Insert Node Above",
			Description: "Splice a new node between the selection and its parent",
			Keys:        []string{"s"},
			Category:    "Edit",
			Modes:       InNormal,
			When:        selectionIsNotRoot,
			Run: func(ctx *Context) {
				if ctx.Session.InsertBetween(ctx.Ctx, "") != nil {
					startEditing(ctx)
				}
			},
		},
		{
			ID:       "node.edit",
			Title:    "Edit Content",
			Keys:     []string{"i", "enter"},
			Category: "Edit",
			Modes:    InNormal,
			When:     hasSelection,
			Run:      func(ctx *Context) { startEditing(ctx) },
		},
		{
			ID:          "node.delete",
			Title:       "Delete Node",
			Description: "Delete the selected leaf node",
			Keys:        []string{"d d"},
			Category:    "Edit",
			Modes:       InNormal,
			When:        selectionIsNotRoot,
			Run:         func(ctx *Context) { ctx.Session.DeleteSelected(ctx.Ctx) },
		},
		{
			ID:          "node.delete-subtree",
			Title:       "Delete Subtree",
			Description: "Delete the selection and everything under it",
			Keys:        []string{"d t"},
			Category:    "Edit",
			Modes:       InNormal,
			When:        hasSelection,
			Run:         func(ctx *Context) { ctx.Session.DeleteSelectedSubtree(ctx.Ctx) },
		},
		{
			ID:          "node.delete-children",
			Title:       "Delete Children",
			Description: "Delete every descendant, keeping the selection",
			Keys:        []string{"d c"},
			Category:    "Edit",
			Modes:       InNormal,
			When:        selectionHasChildren,
			Run:         func(ctx *Context) { ctx.Session.DeleteSelectedChildren(ctx.Ctx) },
		},

		// Mode transitions
		{
			ID:       "mode.normal",
			Title:    "Exit Insert Mode",
			Keys:     []string{"esc"},
			Category: "Mode",
			Modes:    InInsert,
			Run: func(ctx *Context) {
				call(ctx.CommitEdit)
				ctx.Modes.EnterNormal()
			},
		},
		{
			ID:       "ui.dismiss",
			Title:    "Dismiss",
			Keys:     []string{"esc"},
			Category: "Mode",
			Modes:    InNormal,
			Run: func(ctx *Context) {
				ctx.Session.ClearNotice()
				call(ctx.Dismiss)
			},
		},

		// Overlays
		{
			ID:       "search.open",
			Title:    "Search Nodes",
			Keys:     []string{"/"},
			Category: "View",
			Modes:    InNormal,
			When:     func(ctx *Context) bool { return ctx.Session.Tree().HasNodes(ctx.Ctx) },
			Run:      func(ctx *Context) { call(ctx.OpenSearch) },
		},
		{
			ID:       "palette.open",
			Title:    "Command Palette",
			Chord:    "mod+p",
			Category: "View",
			Modes:    InAll,
			Run:      func(ctx *Context) { call(ctx.OpenPalette) },
		},
		{
			ID:       "help.open",
			Title:    "Help",
			Keys:     []string{"?"},
			Category: "View",
			Modes:    InNormal,
			Run:      func(ctx *Context) { call(ctx.OpenHelp) },
		},

		// Clipboard
		{
			ID:          "node.copy",
			Title:       "Copy Subtree",
			Description: "Copy the selected subtree as indented text",
			Keys:        []string{"y"},
			Chord:       "mod+c",
			Category:    "Edit",
			Modes:       InAll,
			When:        hasSelection,
			Run:         copySubtree,
		},

		// View control
		{
			ID:       "view.zoom-in",
			Title:    "Zoom In",
			Chord:    "mod+=",
			Category: "View",
			Modes:    InAll,
			Run:      func(ctx *Context) { ctx.Hooks.Zoom(true) },
		},
		{
			ID:       "view.zoom-out",
			Title:    "Zoom Out",
			Chord:    "mod+-",
			Category: "View",
			Modes:    InAll,
			Run:      func(ctx *Context) { ctx.Hooks.Zoom(false) },
		},
		{
			ID:       "view.fit",
			Title:    "Fit To View",
			Chord:    "mod+0",
			Category: "View",
			Modes:    InAll,
			Run:      func(ctx *Context) { ctx.Hooks.Fit() },
		},
		{
			ID:       "view.pan-left",
			Title:    "Pan Left",
			Chord:    "left",
			Category: "View",
			Modes:    InNormal,
			Run:      func(ctx *Context) { ctx.Hooks.Pan(-40, 0) },
		},
		{
			ID:       "view.pan-right",
			Title:    "Pan Right",
			Chord:    "right",
			Category: "View",
			Modes:    InNormal,
			Run:      func(ctx *Context) { ctx.Hooks.Pan(40, 0) },
		},
		{
			ID:       "view.pan-up",
			Title:    "Pan Up",
			Chord:    "up",
			Category: "View",
			Modes:    InNormal,
			Run:      func(ctx *Context) { ctx.Hooks.Pan(0, -40) },
		},
		{
			ID:       "view.pan-down",
			Title:    "Pan Down",
			Chord:    "down",
			Category: "View",
			Modes:    InNormal,
			Run:      func(ctx *Context) { ctx.Hooks.Pan(0, 40) },
		},
		{
			ID:          "map.export-svg",
			Title:       "Export SVG",
			Description: "Write the current map to an SVG file",
			Category:    "View",
			Modes:       InNormal,
			When:        func(ctx *Context) bool { return ctx.Session.Tree().HasNodes(ctx.Ctx) },
			Run: func(ctx *Context) {
				if err := ctx.Hooks.Export(); err != nil {
					ctx.Session.Notify("export failed: "+err.Error(), application.NoticeError)
				}
			},
		},

		{
			ID:       "app.quit",
			Title:    "Quit",
			Keys:     []string{"q"},
			Category: "App",
			Modes:    InNormal,
			Run:      func(ctx *Context) { call(ctx.Quit) },
		},
	}
}

// copySubtree serializes the selected subtree as indented text and
// writes it to the clipboard.
func copySubtree(ctx *Context) {
	if ctx.Clipboard == nil {
		return
	}
	nodes, err := ctx.Session.Tree().Store().All(ctx.Ctx)
	if err != nil {
		return
	}
	text := domain.OutlineText(nodes, ctx.Session.Selection())
	if text == "" {
		return
	}
	_ = ctx.Clipboard.Copy(text)
}
