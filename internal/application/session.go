package application

import (
	"context"
	"errors"
	"log"

	"arbor/internal/domain"
	"arbor/internal/ports"
)

// NoticeLevel classifies a transient user-visible message.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a transient, dismissible message surfaced to the user when
// a structural mutation is rejected or an operation completes.
type Notice struct {
	Text  string
	Level NoticeLevel
}

// Options are the named behavior decisions that differ across revisions
// of this kind of editor. Both are explicit configuration rather than
// implicit side effects.
type Options struct {
	// DiscardEmptyNodes removes a node whose content is still empty
	// when insert mode is exited, reselecting its parent.
	DiscardEmptyNodes bool

	// AllowRootCascadeDelete permits deleting the root with its whole
	// subtree as a way to reset the tree.
	AllowRootCascadeDelete bool
}

// Session is the boundary above the mutation service: it owns the
// single optional selection, repairs it after every mutation so it
// never dangles, converts structural failures into notices, and
// autosaves a snapshot after each successful mutation.
type Session struct {
	svc       *TreeService
	snapshots ports.SnapshotStore
	opts      Options

	selection string
	notice    *Notice
}

// NewSession creates a session. snapshots may be nil, in which case no
// persistence happens.
func NewSession(svc *TreeService, snapshots ports.SnapshotStore, opts Options) *Session {
	svc.AllowRootCascadeDelete = opts.AllowRootCascadeDelete
	return &Session{svc: svc, snapshots: snapshots, opts: opts}
}

// Tree returns the underlying mutation service for read-only queries.
func (s *Session) Tree() *TreeService {
	return s.svc
}

// Load populates the store from the persisted snapshot. A missing or
// corrupt snapshot degrades to an empty tree.
func (s *Session) Load(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	nodes, err := s.snapshots.Load(ctx)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if err := s.svc.Store().Put(ctx, n); err != nil {
			return err
		}
	}
	if root, ok := domain.FindRoot(nodes); ok {
		s.selection = root.ID
	}
	return nil
}

// EnsureRoot creates a root node with the given content if the tree is
// empty, and selects it.
func (s *Session) EnsureRoot(ctx context.Context, content string) error {
	if id := s.svc.RootID(ctx); id != "" {
		if s.selection == "" {
			s.selection = id
		}
		return nil
	}
	root, err := s.svc.CreateRoot(ctx, content)
	if err != nil {
		return err
	}
	s.selection = root.ID
	s.save(ctx)
	return nil
}

// Selection returns the selected node id, or "" when nothing is
// selected.
func (s *Session) Selection() string {
	return s.selection
}

// Select sets the selection. An empty id clears it.
func (s *Session) Select(id string) {
	s.selection = id
}

// SelectedNode returns the selected node, or nil.
func (s *Session) SelectedNode(ctx context.Context) *domain.Node {
	if s.selection == "" {
		return nil
	}
	node, err := s.svc.Store().Get(ctx, s.selection)
	if err != nil {
		return nil
	}
	return node
}

// SelectionIsRoot reports whether the current selection is the root.
func (s *Session) SelectionIsRoot(ctx context.Context) bool {
	node := s.SelectedNode(ctx)
	return node != nil && node.IsRoot()
}

// Notice returns the latest transient message, or nil.
func (s *Session) Notice() *Notice {
	return s.notice
}

// ClearNotice dismisses the current message.
func (s *Session) ClearNotice() {
	s.notice = nil
}

// Notify replaces the current transient message.
func (s *Session) Notify(text string, level NoticeLevel) {
	s.notice = &Notice{Text: text, Level: level}
}

// Navigation. Each helper is a no-op when there is nowhere to go.

func (s *Session) SelectParent(ctx context.Context) {
	if id := s.svc.ParentID(ctx, s.selection); id != "" {
		s.selection = id
	}
}

func (s *Session) SelectFirstChild(ctx context.Context) {
	if id := s.svc.FirstChildID(ctx, s.selection); id != "" {
		s.selection = id
	}
}

func (s *Session) SelectNextSibling(ctx context.Context) {
	if id := s.svc.NextSiblingID(ctx, s.selection); id != "" {
		s.selection = id
	}
}

func (s *Session) SelectPrevSibling(ctx context.Context) {
	if id := s.svc.PrevSiblingID(ctx, s.selection); id != "" {
		s.selection = id
	}
}

func (s *Session) SelectRoot(ctx context.Context) {
	if id := s.svc.RootID(ctx); id != "" {
		s.selection = id
	}
}

// CreateChild appends a child under the selection and selects it.
func (s *Session) CreateChild(ctx context.Context, content string) *domain.Node {
	if s.selection == "" {
		return nil
	}
	node, err := s.svc.CreateChild(ctx, s.selection, content)
	if err != nil {
		s.Notify(err.Error(), NoticeError)
		return nil
	}
	s.selection = node.ID
	s.save(ctx)
	return node
}

// CreateSiblingAbove inserts a sibling before the selection and selects
// it. Rejected with a notice when the selection is the root.
func (s *Session) CreateSiblingAbove(ctx context.Context, content string) *domain.Node {
	return s.createSibling(ctx, content, true)
}

// CreateSiblingBelow inserts a sibling after the selection and selects
// it. Rejected with a notice when the selection is the root.
func (s *Session) CreateSiblingBelow(ctx context.Context, content string) *domain.Node {
	return s.createSibling(ctx, content, false)
}

func (s *Session) createSibling(ctx context.Context, content string, above bool) *domain.Node {
	if s.selection == "" {
		return nil
	}
	var node *domain.Node
	var err error
	if above {
		node, err = s.svc.CreateSiblingAbove(ctx, s.selection, content)
	} else {
		node, err = s.svc.CreateSiblingBelow(ctx, s.selection, content)
	}
	if err != nil {
		s.Notify(err.Error(), NoticeError)
		return nil
	}
	if node == nil {
		s.Notify(ErrRootHasNoSiblings.Error(), NoticeError)
		return nil
	}
	s.selection = node.ID
	s.save(ctx)
	return node
}

// InsertBetween splices a new node between the selection and its
// parent, then selects the new node.
func (s *Session) InsertBetween(ctx context.Context, content string) *domain.Node {
	if s.selection == "" {
		return nil
	}
	node, err := s.svc.InsertBetween(ctx, s.selection, content)
	if err != nil {
		s.Notify(err.Error(), NoticeError)
		return nil
	}
	if node == nil {
		s.Notify("cannot insert above the root", NoticeError)
		return nil
	}
	s.selection = node.ID
	s.save(ctx)
	return node
}

// UpdateContent replaces the selected node's content.
func (s *Session) UpdateContent(ctx context.Context, content string) {
	if s.selection == "" {
		return
	}
	if err := s.svc.UpdateContent(ctx, s.selection, content); err != nil {
		s.Notify(err.Error(), NoticeError)
		return
	}
	s.save(ctx)
}

// FinishEdit applies the end-of-insert policy: when DiscardEmptyNodes
// is set and the edited node is a childless node with empty content, it
// is removed and the parent reselected; otherwise the content is saved.
func (s *Session) FinishEdit(ctx context.Context, content string) {
	if s.selection == "" {
		return
	}
	if content == "" && s.opts.DiscardEmptyNodes {
		node := s.SelectedNode(ctx)
		if node != nil && !node.IsRoot() {
			if err := s.svc.DeleteNode(ctx, s.selection); err == nil {
				s.selection = node.ParentID
				s.save(ctx)
				return
			}
		}
	}
	s.UpdateContent(ctx, content)
}

// DeleteSelected removes the selected leaf node. The selection moves to
// the next sibling, else the previous sibling, else the parent.
func (s *Session) DeleteSelected(ctx context.Context) {
	s.deleteSelection(ctx, s.svc.DeleteNode)
}

// DeleteSelectedSubtree removes the selection and all descendants.
func (s *Session) DeleteSelectedSubtree(ctx context.Context) {
	s.deleteSelection(ctx, s.svc.DeleteSubtree)
}

func (s *Session) deleteSelection(ctx context.Context, del func(context.Context, string) error) {
	if s.selection == "" {
		return
	}
	replacement := s.replacementSelection(ctx)
	if err := del(ctx, s.selection); err != nil {
		var derr *DeleteError
		if errors.As(err, &derr) {
			s.Notify(derr.Error(), NoticeError)
		} else {
			s.Notify(err.Error(), NoticeError)
		}
		return
	}
	s.selection = replacement
	s.save(ctx)
}

// DeleteSelectedChildren removes every descendant of the selection,
// keeping the selection itself.
func (s *Session) DeleteSelectedChildren(ctx context.Context) {
	if s.selection == "" {
		return
	}
	if err := s.svc.DeleteChildren(ctx, s.selection); err != nil {
		s.Notify(err.Error(), NoticeError)
		return
	}
	s.save(ctx)
}

func (s *Session) replacementSelection(ctx context.Context) string {
	if id := s.svc.NextSiblingID(ctx, s.selection); id != "" {
		return id
	}
	if id := s.svc.PrevSiblingID(ctx, s.selection); id != "" {
		return id
	}
	return s.svc.ParentID(ctx, s.selection)
}

// save writes a fresh snapshot after a successful mutation. Persistence
// failures are surfaced as a notice, never as a crash.
func (s *Session) save(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	nodes, err := s.svc.Store().All(ctx)
	if err != nil {
		log.Printf("session: reading snapshot: %v", err)
		return
	}
	if err := s.snapshots.Save(ctx, nodes); err != nil {
		s.Notify("save failed: "+err.Error(), NoticeError)
	}
}
