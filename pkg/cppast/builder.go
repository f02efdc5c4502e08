package cppast

// NewNode creates a detached node of the given kind covering no tokens.
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:       kind,
		FirstToken: -1,
		LastToken:  -1,
	}
}

// NewTokenNode creates a node of the given kind covering tokens [first, last].
func NewTokenNode(kind NodeKind, file *FileSnapshot, first, last int) *Node {
	return &Node{
		Kind:       kind,
		FirstToken: first,
		LastToken:  last,
		File:       file,
	}
}

// AppendChild appends a child node to a parent, maintaining sibling links.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// RemoveChild detaches child from parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}
	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}
	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}
