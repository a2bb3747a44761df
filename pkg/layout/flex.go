package layout

import (
	"math"

	"boxwright/pkg/css"
	"boxwright/pkg/geom"
	"boxwright/pkg/tree"
)

// FlexItem is one item's main-axis sizes during distribution.
type FlexItem struct {
	Min       float64
	Preferred float64
	// Size is the final main size, set by DistributeFlex.
	Size float64
}

// DistributeFlex sizes items along a main axis of length container.
//
// Items start at their preferred size. Free space is shared equally.
// Overflow is taken back in rounds: each round splits what is still
// missing equally among the items above their minimum, never taking an
// item below it. Shrinking stops when the items fit or none can shrink
// further, which is at most one round per item. DistributeFlex returns the
// number of shrink rounds run.
func DistributeFlex(container float64, items []FlexItem) (rounds int) {
	if len(items) == 0 {
		return 0
	}
	eps := 1e-9 * math.Max(1, math.Abs(container))
	for i := range items {
		items[i].Size = math.Max(items[i].Preferred, items[i].Min)
	}

	free := container - sumSizes(items)
	switch {
	case free > eps:
		share := free / float64(len(items))
		for i := range items {
			items[i].Size += share
		}

	case free < -eps:
		for rounds < len(items) {
			free = container - sumSizes(items)
			unfrozen := 0
			for _, it := range items {
				if it.Size > it.Min {
					unfrozen++
				}
			}
			if unfrozen == 0 || free >= -eps {
				break
			}
			rounds++
			share := -free / float64(unfrozen)
			for i := range items {
				if items[i].Size > items[i].Min {
					items[i].Size = math.Max(items[i].Min, items[i].Size-share)
				}
			}
		}
	}
	return rounds
}

func sumSizes(items []FlexItem) float64 {
	var s float64
	for _, it := range items {
		s += it.Size
	}
	return s
}

// layoutFlex lays out a flex container's items edge to edge along its main
// axis. The container's own box resolves like a block box.
func (e *Engine) layoutFlex(bt *BoxTree, id tree.NodeID, info css.FormattingInfo) *PaintNode {
	bf := e.openBlock(bt, id, info)
	row := bf.style.FlexDirection == css.FlexDirectionRow
	cb := bf.childContainingBlock()
	childInfo := bf.childInfo(cb)

	var ids []tree.NodeID
	for c := range bt.Children(id) {
		ids = append(ids, c)
	}
	items := make([]FlexItem, len(ids))

	var main float64
	if row {
		main = cb.Width
		for i, c := range ids {
			items[i] = e.rowItem(bt, c, childInfo)
		}
	} else {
		var desired float64
		for i, c := range ids {
			pref := e.layoutNode(bt, c, childInfo).MarginBox.Height
			// the preferred height wins over a larger min-height
			r := geom.NewRangeMaxPriority(e.minHeight(bt, c, childInfo), pref)
			items[i] = FlexItem{Min: r.MinOr(0), Preferred: pref}
			desired += pref
		}
		main = desired
		if bf.hasHeight {
			main = bf.height
		}
	}

	rounds := DistributeFlex(main, items)

	var cursor, cross float64
	for i, c := range ids {
		itemCB := cb
		if row {
			itemCB.X = cb.X + cursor
			itemCB.Width = items[i].Size
			n := bt.Node(c)
			n.mainWidth, n.hasMainWidth = items[i].Size, true
		} else {
			itemCB.Y = cb.Y + cursor
		}
		child := e.layoutNode(bt, c, bf.childInfo(itemCB))
		if row {
			cross = math.Max(cross, child.MarginBox.Height)
		} else {
			edges := child.MarginBox.Height - child.ContentBox.Height
			child.setContentHeight(math.Max(0, items[i].Size-edges))
			cross = math.Max(cross, child.MarginBox.Width)
		}
		cursor += items[i].Size
		bf.pn.Children = append(bf.pn.Children, child)
	}
	e.logger.Debug("flex distributed", "box", bf.node, "items", len(items), "main", main, "shrink_rounds", rounds)

	if row {
		return bf.close(cross)
	}
	return bf.close(cursor)
}

// rowItem returns the main sizes of a row item. An item with a definite
// width prefers that width but may shrink down to its min-width.
func (e *Engine) rowItem(bt *BoxTree, id tree.NodeID, info css.FormattingInfo) FlexItem {
	r := e.intrinsic(bt, id, info)
	item := FlexItem{Min: r.MinOr(0), Preferred: r.MaxOr(0)}
	n := bt.Node(id)
	style := n.Style()
	if style.Width.Kind == css.SizeLength {
		self := selfInfo(n, info)
		bound := resolveBoxes(style, self).bounding().Horizontal()
		item.Min = style.WidthRange(self).MinOr(0) + bound
	}
	return item
}

// minHeight is the smallest margin-box height a column item may shrink to.
func (e *Engine) minHeight(bt *BoxTree, id tree.NodeID, info css.FormattingInfo) float64 {
	n := bt.Node(id)
	style := n.Style()
	info = selfInfo(n, info)
	return style.HeightRange(info).MinOr(0) + resolveBoxes(style, info).bounding().Vertical()
}
