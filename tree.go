package hufgram

import "container/heap"

// node is one position in the coding tree: a leaf when both children are
// nil, internal otherwise. rep is the lexicographically smallest token
// reachable in the subtree; it exists only to break frequency ties
// deterministically and is never persisted.
type node struct {
	token Token // set on leaves only
	freq  uint64
	left  *node
	right *node
	rep   Token
}

func (n *node) leaf() bool { return n.left == nil && n.right == nil }

// less orders merge candidates by frequency, then by representative token.
// Representatives are distinct across live candidates, so this is a strict
// total order: the merge sequence cannot depend on map iteration order or
// heap insertion order.
func (n *node) less(o *node) bool {
	if n.freq != o.freq {
		return n.freq < o.freq
	}
	return n.rep < o.rep
}

type nodeHeap []*node

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].less(h[j]) }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

// buildTree constructs the coding tree for a frequency table. The archive
// stores only the table, never the codes, so encode and decode both call
// this and must arrive at the identical tree for any iteration order of the
// entries. A single-entry table yields a lone leaf. An empty table is
// replaced by the synthetic single-entry table for the empty token.
func buildTree(ft FrequencyTable) *node {
	h := make(nodeHeap, 0, len(ft))
	for tok, count := range ft {
		h = append(h, &node{token: tok, freq: uint64(count), rep: tok})
	}
	if len(h) == 0 {
		h = append(h, &node{token: "", freq: 1, rep: ""})
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*node)
		b := heap.Pop(&h).(*node)

		left, right := a, b
		if right.less(left) {
			left, right = right, left
		}
		rep := left.rep
		if right.rep < rep {
			rep = right.rep
		}
		heap.Push(&h, &node{
			freq:  left.freq + right.freq,
			left:  left,
			right: right,
			rep:   rep,
		})
	}
	return h[0]
}

// buildCodes assigns a prefix-free bit string to every leaf token: a left
// edge appends '0', a right edge '1'. A single-leaf tree gets the fixed
// one-bit code "0", since a zero-length code cannot be emitted. The
// traversal keeps its own stack so tiny group sizes over large inputs
// cannot exhaust call depth.
func buildCodes(root *node) map[Token]string {
	codes := make(map[Token]string)
	if root == nil {
		return codes
	}
	if root.leaf() {
		codes[root.token] = "0"
		return codes
	}

	type frame struct {
		n      *node
		prefix string
	}
	stack := []frame{{root, ""}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.leaf() {
			codes[f.n.token] = f.prefix
			continue
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.n.right, f.prefix + "1"})
		}
		if f.n.left != nil {
			stack = append(stack, frame{f.n.left, f.prefix + "0"})
		}
	}
	return codes
}
