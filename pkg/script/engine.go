// Package script runs a scene's <script> blocks against its document
// before the first layout.
package script

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"boxwright/pkg/dom"
)

// Engine executes JavaScript against a document.
type Engine struct {
	vm     *goja.Runtime
	logger *log.Logger
	dom    *domContext
}

type Option func(*Engine)

// WithLogger sends console output to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine with a fresh goja runtime.
func New(opts ...Option) *Engine {
	e := &Engine{vm: goja.New(), logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, o := range opts {
		o(e)
	}
	c := &consoleAPI{logger: e.logger}
	c.register(e.vm)
	return e
}

// Execute runs doc's scripts in document order against doc. It stops at
// the first script that throws.
func (e *Engine) Execute(doc *dom.Document) error {
	e.bind(doc)
	for i, src := range doc.Scripts {
		if _, err := e.vm.RunString(src); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// Eval runs src against doc and returns the value of its last
// expression, exported to Go.
func (e *Engine) Eval(doc *dom.Document, src string) (any, error) {
	e.bind(doc)
	v, err := e.vm.RunString(src)
	if err != nil {
		return nil, err
	}
	return v.Export(), nil
}

// bind points the document global at doc, keeping proxies handed out
// earlier for the same document valid.
func (e *Engine) bind(doc *dom.Document) {
	if e.dom == nil || e.dom.doc != doc {
		e.dom = registerDocument(e.vm, doc)
	}
}
