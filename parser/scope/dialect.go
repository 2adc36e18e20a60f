package scope

import (
	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
)

// Dialect selects the language version specific binding rules.
type Dialect interface {
	Name() string

	// BlockParameter binds a block parameter in the (already pushed) block
	// frame.
	BlockParameter(manager *Manager, token *lr.TokenValue) (ast.Node, error)
}

// Ruby18 block parameters are assignments: an outer local of the same name
// is reused and non-local targets such as instance variables are allowed.
type Ruby18 struct{}

func (Ruby18) Name() string { return "1.8" }

func (Ruby18) BlockParameter(
	manager *Manager,
	token *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	return manager.Assignable(token, nil)
}

// Ruby19 block parameters are block local.
type Ruby19 struct{}

func (Ruby19) Name() string { return "1.9" }

func (Ruby19) BlockParameter(
	manager *Manager,
	token *lr.TokenValue,
) (
	ast.Node,
	error,
) {
	slot, err := manager.DeclareShadowing(token)
	if err != nil {
		return nil, err
	}

	return &ast.Argument{
		StartEndPos: token.StartEndPos,
		Name:        token.Value,
		Slot:        slot,
	}, nil
}

// DialectByName returns nil for unknown names.
func DialectByName(name string) Dialect {
	switch name {
	case "", "1.8", "ruby18":
		return Ruby18{}
	case "1.9", "ruby19":
		return Ruby19{}
	}
	return nil
}
