package rcparsing

import "github.com/romecore/rcparsing/internal/value"

// ASTNode is the output of the AST builder: elementId, startIndex, length,
// intermediateValue, and the child list. It is a plain, walkable tree -- no
// behavior attached, same spirit as participle's own parsed struct values,
// just without the reflection-driven field binding.
type ASTNode struct {
	ElementID         int
	StartIndex        Position
	Length            int
	IntermediateValue value.Value
	Children          []*ASTNode
}

// End returns StartIndex+Length.
func (n *ASTNode) End() Position { return n.StartIndex + Position(n.Length) }

// BuildAST walks a root ParsedElement tree and splices out every element
// marked ExcludeFromAST, promoting its children into its parent's child
// list. The build is pure: it never touches the parser context or the text
// buffer, only the ParsedElement tree it's handed.
func BuildAST(root ParsedElement) *ASTNode {
	nodes := buildChildren([]ParsedElement{root})
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// buildChildren builds the spliced node list for a slice of sibling
// elements, promoting each excluded element's own children in its place.
func buildChildren(elements []ParsedElement) []*ASTNode {
	var out []*ASTNode
	for _, el := range elements {
		if !el.Success {
			continue
		}
		if el.ExcludeFromAST {
			out = append(out, buildChildren(el.Children)...)
			continue
		}
		out = append(out, &ASTNode{
			ElementID:         el.ElementID,
			StartIndex:        el.StartIndex,
			Length:            el.Length,
			IntermediateValue: el.IntermediateValue,
			Children:          buildChildren(el.Children),
		})
	}
	return out
}

// CountNodes returns the number of nodes in the tree rooted at n: the count
// of parsed elements with ExcludeFromAST false.
func CountNodes(n *ASTNode) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += CountNodes(c)
	}
	return count
}
