package sgf

// GameTree is one tree of an SGF file: a main line of nodes plus optional
// variation subtrees.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node is a single SGF node, a property set such as B[pd] or C[...].
// Properties may repeat (AB[aa][bb]).
type Node struct {
	Properties map[string][]string
}

// SGF is the root element of an SGF record.
type SGF struct {
	Root *GameTree
}
