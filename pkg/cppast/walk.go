package cppast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the forest starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := walkFunc(root); err != nil {
		return err
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}
	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}
	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}
	return nil
}

// Inspect visits nodes in pre-order. Children are skipped when fn returns false.
func Inspect(root *Node, fn func(n *Node) bool) {
	if root == nil || !fn(root) {
		return
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		Inspect(child, fn)
	}
}

// FindAll returns every node for which pred returns true, in pre-order.
func FindAll(root *Node, pred func(n *Node) bool) []*Node {
	var out []*Node
	Inspect(root, func(n *Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindByKind returns every node of the given kind, in pre-order.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}

// FindStatements returns every statement of the given kind, in pre-order.
func FindStatements(root *Node, kind StmtKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.StmtKind() == kind })
}
