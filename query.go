// Package pallet provides query mechanisms for component-based entity systems
package pallet

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// Query represents a composable query interface for filtering entities
type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

// QueryNode represents a node in the query tree that can be evaluated against
// an entity's component mask
type QueryNode interface {
	Evaluate(entityMask mask.Mask) bool
}

// QueryOperation defines the logical operations for query nodes
type QueryOperation int

const (
	OpAnd QueryOperation = iota // Logical AND operation
	OpOr                        // Logical OR operation
	OpNot                       // Logical NOT operation
)

// compositeNode implements a compound query with child nodes
type compositeNode struct {
	op       QueryOperation
	children []QueryNode
	nodeMask mask.Mask
}

// leafNode implements a simple query with no child nodes
type leafNode struct {
	nodeMask mask.Mask
}

// query implements the Query interface
type query struct {
	root QueryNode
}

// newQuery creates a new empty query
func newQuery() Query {
	return &query{}
}

func maskOfComponents(components []Component) mask.Mask {
	var m mask.Mask
	for _, comp := range components {
		m.Mark(uint32(comp.ID()))
	}
	return m
}

// newCompositeNode creates a new composite query node with the specified operation
func newCompositeNode(op QueryOperation, components []Component) *compositeNode {
	return &compositeNode{
		op:       op,
		children: make([]QueryNode, 0),
		nodeMask: maskOfComponents(components),
	}
}

// newLeafNode creates a new leaf query node with the specified components
func newLeafNode(components []Component) *leafNode {
	return &leafNode{nodeMask: maskOfComponents(components)}
}

// Evaluate implements the QueryNode interface for composite nodes
func (n *compositeNode) Evaluate(entityMask mask.Mask) bool {
	switch n.op {
	case OpAnd:
		if !entityMask.ContainsAll(n.nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(entityMask) {
				return false
			}
		}
		return true
	case OpOr:
		if entityMask.ContainsAny(n.nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(entityMask) {
				return true
			}
		}
		return false
	case OpNot:
		if len(n.children) == 0 {
			return entityMask.ContainsNone(n.nodeMask)
		}
		if !entityMask.ContainsNone(n.nodeMask) {
			return false
		}
		for _, child := range n.children {
			if child.Evaluate(entityMask) {
				return false
			}
		}
		return true
	}
	return false
}

// Evaluate implements the QueryNode interface for leaf nodes
func (n *leafNode) Evaluate(entityMask mask.Mask) bool {
	return entityMask.ContainsAll(n.nodeMask)
}

// And creates a new AND operation node with the provided items
func (q *query) And(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpAnd, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Or creates a new OR operation node with the provided items
func (q *query) Or(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpOr, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Not creates a new NOT operation node with the provided items
func (q *query) Not(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpNot, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// validateQueryItems checks if all items are of valid types for queries
func (q *query) validateQueryItems(items ...interface{}) error {
	for _, item := range items {
		switch item.(type) {
		case Component, []Component, QueryNode, Query:
			continue
		default:
			return fmt.Errorf("invalid query item type: %T. Only Component, []Component, or QueryNode are allowed", item)
		}
	}
	return nil
}

// processItems converts the input items into components and query nodes
func (q *query) processItems(items ...interface{}) ([]Component, []QueryNode) {
	if err := q.validateQueryItems(items...); err != nil {
		panic(bark.AddTrace(err))
	}
	components := make([]Component, 0)
	children := make([]QueryNode, 0)
	for _, item := range items {
		switch v := item.(type) {
		case Component:
			components = append(components, v)
		case []Component:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}
	return components, children
}

// Evaluate implements the QueryNode interface for the query type
func (q *query) Evaluate(entityMask mask.Mask) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(entityMask)
}
