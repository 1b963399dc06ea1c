package autograd

import (
	"github.com/emirpasic/gods/v2/stacks/arraystack"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Backward computes the gradients of root with respect to every Variable it
// depends on, starting from the seed gradient.
//
// Algorithm:
//  1. Build the sub-graph reachable from root in post-order (inputs before
//     the node), each node exactly once.
//  2. Reset the gradients of intermediate nodes; leaves keep accumulating
//     until ZeroGrad.
//  3. Seed root, then walk the order in reverse so every consumer of a node
//     has contributed before the node's own gradient rule runs.
//
// With retainGraph the merged gradients keep their history and can be
// differentiated again. Backward on a root that does not track gradients is a
// no-op. Panics raised by gradient rules are returned as errors.
func Backward(root, seed *Variable, retainGraph bool) error {
	return exceptions.TryCatch[error](func() {
		backward(root, seed, retainGraph)
	})
}

// Backward runs Backward with this Variable as root.
func (v *Variable) Backward(seed *Variable, retainGraph bool) error {
	return Backward(v, seed, retainGraph)
}

// BackwardOnes runs Backward seeded with ones of root's shape and dtype.
func BackwardOnes(root *Variable) error {
	return Backward(root, OnesLike(root), false)
}

// OnesLike returns a constant of ones with v's shape and dtype.
func OnesLike(v *Variable) *Variable {
	return Input(v.backend.Full(v.Shape(), 1, v.DType()), v.backend)
}

// Try runs fn, typically a forward computation, and returns the error of the
// first operation that panicked, or nil.
func Try(fn func()) error {
	return exceptions.TryCatch[error](fn)
}

func backward(root, seed *Variable, retainGraph bool) {
	if root == nil || seed == nil {
		panic(errors.New("backward: nil root or seed"))
	}
	if !seed.Shape().Equal(root.Shape()) {
		panic(errors.Wrapf(ErrShapeMismatch, "backward: seed shape %v, root shape %v", seed.Shape(), root.Shape()))
	}
	if !root.calcGrad {
		klog.V(3).Infof("backward: root %d does not track gradients, seed dropped", root.id)
		return
	}

	order := buildSubgraph(root)
	for _, node := range order {
		if !node.IsLeaf() {
			node.grads = nil
		}
	}
	root.AddGrad(seed)

	klog.V(3).Infof("backward: root %d, %d nodes, retainGraph=%t", root.id, len(order), retainGraph)
	for i := len(order) - 1; i >= 0; i-- {
		order[i].calcGradInputs(retainGraph)
	}
}

// frame is one entry of the DFS stack; expanded marks that the node's inputs
// have already been pushed.
type frame struct {
	node     *Variable
	expanded bool
}

// buildSubgraph returns the gradient-tracking nodes reachable from root in
// post-order: every node appears after all of its inputs, and exactly once.
// Nodes are deduplicated by ID; a misused graph with a cycle still terminates.
func buildSubgraph(root *Variable) []*Variable {
	var order []*Variable
	visited := make(map[uint64]struct{})
	stack := arraystack.New[frame]()
	stack.Push(frame{node: root})

	for !stack.Empty() {
		f, _ := stack.Pop()
		if f.expanded {
			order = append(order, f.node)
			continue
		}
		if _, seen := visited[f.node.id]; seen {
			continue
		}
		visited[f.node.id] = struct{}{}
		stack.Push(frame{node: f.node, expanded: true})

		// Push in reverse so inputs are visited in order.
		for i := len(f.node.inputs) - 1; i >= 0; i-- {
			in := f.node.inputs[i]
			if !in.calcGrad {
				continue
			}
			if _, seen := visited[in.id]; !seen {
				stack.Push(frame{node: in})
			}
		}
	}
	return order
}
