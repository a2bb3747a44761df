package script

import (
	"strings"

	"github.com/dop251/goja"

	"boxwright/pkg/dom"
)

// domContext holds the proxies handed to scripts. The same *dom.Node
// always maps to the same JS object so === works.
type domContext struct {
	vm      *goja.Runtime
	doc     *dom.Document
	proxies map[*dom.Node]*goja.Object
	nodes   map[*goja.Object]*dom.Node
}

// registerDocument sets up the global document object.
func registerDocument(vm *goja.Runtime, doc *dom.Document) *domContext {
	ctx := &domContext{
		vm:      vm,
		doc:     doc,
		proxies: make(map[*dom.Node]*goja.Object),
		nodes:   make(map[*goja.Object]*dom.Node),
	}

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		return ctx.nodeOrNull(doc.Root.GetElementByID(call.Arguments[0].String()))
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(getElementsByTagName(doc.Root, strings.ToLower(call.Arguments[0].String())))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		return ctx.elementProxy(doc.CreateElement(call.Arguments[0].String(), nil))
	})
	docObj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		text := ""
		if len(call.Arguments) > 0 {
			text = call.Arguments[0].String()
		}
		return ctx.elementProxy(doc.CreateText(text))
	})
	root := ctx.elementProxy(doc.Root)
	docObj.Set("body", root)
	docObj.Set("documentElement", root)

	vm.Set("document", docObj)
	return ctx
}

func getElementsByTagName(root *dom.Node, tag string) []*dom.Node {
	var out []*dom.Node
	root.Walk(func(n *dom.Node) bool {
		if n != root && n.Type != dom.TextNode && n.TagName == tag {
			out = append(out, n)
		}
		return true
	})
	return out
}

func (ctx *domContext) elementArray(nodes []*dom.Node) goja.Value {
	vals := make([]any, len(nodes))
	for i, n := range nodes {
		vals[i] = ctx.elementProxy(n)
	}
	return ctx.vm.NewArray(vals...)
}

func (ctx *domContext) nodeOrNull(n *dom.Node) goja.Value {
	if n == nil {
		return goja.Null()
	}
	return ctx.elementProxy(n)
}

// elementProxy returns the JS object wrapping node, creating it once.
func (ctx *domContext) elementProxy(node *dom.Node) *goja.Object {
	if v, ok := ctx.proxies[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.proxies[node] = v
	ctx.nodes[v] = node
	return v
}

// unwrapNode returns the node behind a proxy, or nil for anything else.
func (ctx *domContext) unwrapNode(val goja.Value) *dom.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj, ok := val.(*goja.Object)
	if !ok {
		return nil
	}
	return ctx.nodes[obj]
}

// elementAccessor implements goja.DynamicObject over a dom.Node.
type elementAccessor struct {
	ctx  *domContext
	node *dom.Node
}

var elementKeys = []string{
	"nodeType", "nodeName", "nodeValue", "tagName", "id", "textContent",
	"getAttribute", "setAttribute", "hasAttribute",
	"appendChild", "parentNode", "parentElement", "childNodes", "children",
	"firstChild", "lastChild", "nextSibling", "previousSibling",
	"childElementCount", "hasChildNodes", "style",
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	n := e.node
	isText := n.Type == dom.TextNode

	switch key {
	case "nodeType":
		if isText {
			return vm.ToValue(3) // Node.TEXT_NODE
		}
		return vm.ToValue(1) // Node.ELEMENT_NODE
	case "nodeName":
		if isText {
			return vm.ToValue("#text")
		}
		return vm.ToValue(strings.ToUpper(n.TagName))
	case "nodeValue":
		if isText {
			return vm.ToValue(n.Text)
		}
		return goja.Null()
	case "tagName":
		if isText {
			return goja.Undefined()
		}
		return vm.ToValue(strings.ToUpper(n.TagName))
	case "id":
		id, _ := n.GetAttribute("id")
		return vm.ToValue(id)
	case "textContent":
		return vm.ToValue(n.TextContent())
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			val, ok := n.GetAttribute(call.Arguments[0].String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				panic(vm.NewTypeError("Failed to execute 'setAttribute' on 'Element': 2 arguments required"))
			}
			n.SetAttribute(strings.ToLower(call.Arguments[0].String()), call.Arguments[1].String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			_, ok := n.GetAttribute(call.Arguments[0].String())
			return vm.ToValue(ok)
		})
	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': 1 argument required"))
			}
			child := e.ctx.unwrapNode(call.Arguments[0])
			if child == nil {
				panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': parameter 1 is not of type 'Node'"))
			}
			if isText {
				panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': text nodes have no children"))
			}
			if !child.IsOrphan() {
				panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': the new child already has a parent"))
			}
			n.AppendChild(child)
			return call.Arguments[0]
		})
	case "parentNode", "parentElement":
		return e.ctx.nodeOrNull(n.Parent())
	case "childNodes":
		return e.ctx.elementArray(n.ChildNodes())
	case "children":
		var els []*dom.Node
		for c := range n.Children() {
			if c.Type != dom.TextNode {
				els = append(els, c)
			}
		}
		return e.ctx.elementArray(els)
	case "firstChild":
		return e.ctx.nodeOrNull(n.FirstChild())
	case "lastChild":
		return e.ctx.nodeOrNull(n.LastChild())
	case "nextSibling":
		return e.ctx.nodeOrNull(n.NextSibling())
	case "previousSibling":
		return e.ctx.nodeOrNull(n.PrevSibling())
	case "childElementCount":
		count := 0
		for c := range n.Children() {
			if c.Type != dom.TextNode {
				count++
			}
		}
		return vm.ToValue(count)
	case "hasChildNodes":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			return vm.ToValue(n.ChildCount() > 0)
		})
	case "style":
		if isText {
			return goja.Undefined()
		}
		return vm.NewDynamicObject(&styleAccessor{vm: vm, node: n})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	n := e.node
	switch key {
	case "textContent", "nodeValue":
		if n.Type == dom.TextNode {
			n.SetText(val.String())
			return true
		}
		if key == "nodeValue" {
			return true
		}
		return e.setTextContent(val.String())
	case "id":
		n.SetAttribute("id", val.String())
		return true
	}
	return false
}

// setTextContent replaces an element's text. Nodes are never removed from
// a document, so only elements that are empty or hold a single text node
// can be changed.
func (e *elementAccessor) setTextContent(text string) bool {
	n := e.node
	switch first := n.FirstChild(); {
	case first == nil:
		n.AppendText(text)
	case n.ChildCount() == 1 && first.Type == dom.TextNode:
		first.SetText(text)
	default:
		panic(e.ctx.vm.NewTypeError("textContent can only replace a single text child"))
	}
	return true
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(string) bool { return false }

func (e *elementAccessor) Keys() []string { return elementKeys }
