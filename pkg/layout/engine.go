// Package layout turns a styled element tree into a tree of nested boxes.
//
// A pass runs in three steps: Build normalizes the element tree into a box
// tree whose nodes hold only block-level or only inline-level children;
// the block, inline and flex formatting contexts compute geometry; the
// result is a PaintNode tree consumed once by the paint walk.
package layout

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"boxwright/pkg/css"
	"boxwright/pkg/dom"
	"boxwright/pkg/geom"
	"boxwright/pkg/text"
	"boxwright/pkg/tree"
)

var (
	// ErrInvariant marks a violated internal invariant. Layout stops at the
	// first one and the frame is dropped.
	ErrInvariant = errors.New("layout invariant violated")

	// ErrNotSupported is returned for styles this engine does not lay out:
	// floats, absolute and fixed positioning, grid, table and inline-block
	// display, reversed flex directions, and blocks inside inline elements.
	ErrNotSupported = errors.New("not supported")
)

func invariantf(format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...))
}

func notSupportedf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotSupported}, args...)...)
}

// Engine lays out element trees. The zero value is not usable; see New.
type Engine struct {
	measure    text.Measurer
	lineHeight float64
	fontSize   float64
	logger     *log.Logger
}

type Option func(*Engine)

// WithMeasurer sets the text measurer. The default measures every rune as
// 0.6 of the font size.
func WithMeasurer(m text.Measurer) Option {
	return func(e *Engine) { e.measure = m }
}

// WithLineHeight sets the line height as a multiple of the font size.
func WithLineHeight(factor float64) Option {
	return func(e *Engine) {
		if factor > 0 {
			e.lineHeight = factor
		}
	}
}

// WithFontSize sets the font size the root element inherits.
func WithFontSize(px float64) Option {
	return func(e *Engine) {
		if px > 0 {
			e.fontSize = px
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		measure:    text.Monospace{Advance: 0.6},
		lineHeight: text.DefaultLineHeight,
		fontSize:   css.DefaultFontSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return e
}

// Layout lays out the tree under root inside viewport. Unsupported styles
// are reported as ErrNotSupported before any geometry is computed; an
// invariant violation during the pass is returned wrapping ErrInvariant
// and no partial tree is returned.
func (e *Engine) Layout(root *dom.Node, viewport geom.Rect) (pn *PaintNode, err error) {
	bt, err := e.Build(root)
	if err != nil {
		return nil, err
	}
	if err := bt.checkSupported(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok || !isInvariant(rerr) {
				panic(r)
			}
			e.logger.Error("layout aborted", "err", rerr)
			pn, err = nil, rerr
		}
	}()

	info := css.FormattingInfo{ContainingBlock: viewport, FontSize: e.fontSize}
	pn = e.layoutNode(bt, bt.Root(), info)
	e.logger.Debug("layout done", "boxes", bt.Len(), "width", viewport.Width, "height", pn.MarginBox.Height)
	return pn, nil
}

func isInvariant(err error) bool {
	return errors.Is(err, ErrInvariant) ||
		errors.Is(err, tree.ErrInvariant) ||
		errors.Is(err, css.ErrUnimplemented)
}

// layoutNode dispatches a box to the formatting context it participates in.
func (e *Engine) layoutNode(bt *BoxTree, id tree.NodeID, info css.FormattingInfo) *PaintNode {
	n := bt.Node(id)
	switch {
	case n.Context == ContextFlex:
		return e.layoutFlex(bt, id, info)
	case n.ChildrenAreInline:
		return e.layoutInlineContainer(bt, id, info)
	}
	return e.layoutBlock(bt, id, info)
}
