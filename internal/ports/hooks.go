package ports

// ViewHooks is the capability object the rendering layer populates once
// mounted. Every member may be nil until registration; the call helpers
// treat an unset hook as a safe no-op.
type ViewHooks struct {
	PanBy       func(dx, dy float64)
	ZoomIn      func()
	ZoomOut     func()
	FitToView   func()
	ExportSVG   func() error
	FocusEditor func()
}

// Pan invokes the pan hook if registered.
func (h *ViewHooks) Pan(dx, dy float64) {
	if h != nil && h.PanBy != nil {
		h.PanBy(dx, dy)
	}
}

// Zoom invokes the zoom-in or zoom-out hook if registered.
func (h *ViewHooks) Zoom(in bool) {
	if h == nil {
		return
	}
	if in {
		if h.ZoomIn != nil {
			h.ZoomIn()
		}
		return
	}
	if h.ZoomOut != nil {
		h.ZoomOut()
	}
}

// Fit invokes the fit-to-view hook if registered.
func (h *ViewHooks) Fit() {
	if h != nil && h.FitToView != nil {
		h.FitToView()
	}
}

// Export invokes the SVG export hook if registered.
func (h *ViewHooks) Export() error {
	if h != nil && h.ExportSVG != nil {
		return h.ExportSVG()
	}
	return nil
}

// Focus invokes the editor focus hook if registered.
func (h *ViewHooks) Focus() {
	if h != nil && h.FocusEditor != nil {
		h.FocusEditor()
	}
}
