package ast

import "sync/atomic"

type NodeType string

const (
	NodeLiteralExpression   NodeType = "LiteralExpression"
	NodeGroupingExpression  NodeType = "GroupingExpression"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeLogicalExpression   NodeType = "LogicalExpression"
	NodeVariableExpression  NodeType = "VariableExpression"
	NodeAssignExpression    NodeType = "AssignExpression"
	NodeCallExpression      NodeType = "CallExpression"
	NodeGetExpression       NodeType = "GetExpression"
	NodeSetExpression       NodeType = "SetExpression"
	NodeThisExpression      NodeType = "ThisExpression"
	NodeSuperExpression     NodeType = "SuperExpression"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodePrintStatement      NodeType = "PrintStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeVarStatement        NodeType = "VarStatement"
	NodeFunctionStatement   NodeType = "FunctionStatement"
	NodeClassStatement      NodeType = "ClassStatement"
)

// NodeID identifies a node for the lifetime of the process. Two nodes with
// identical shape and position still receive different identifiers, so
// resolver bindings can be keyed by it.
type NodeID uint64

var lastNodeID atomic.Uint64

type Node interface {
	NodeType() NodeType
	ID() NodeID
	isNode()
}

type nodeImpl struct {
	Type NodeType
	id   NodeID
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind, id: NodeID(lastNodeID.Add(1))}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) ID() NodeID         { return n.id }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}
