package scope

import (
	"unicode"
	"unicode/utf8"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/warning"
)

// IdentifierKind is an identifier's lexical form.
type IdentifierKind int

const (
	LocalIdentifier = IdentifierKind(iota)
	ConstantIdentifier
	InstanceIdentifier
	ClassVariableIdentifier
	GlobalIdentifier
	PseudoVariable
)

var pseudoVariables = map[string]struct{}{
	"self":     {},
	"nil":      {},
	"true":     {},
	"false":    {},
	"__FILE__": {},
	"__LINE__": {},
}

// Classify determines name's lexical form from its text.
func Classify(name string) IdentifierKind {
	_, ok := pseudoVariables[name]
	if ok {
		return PseudoVariable
	}

	if len(name) > 1 && name[0] == '@' && name[1] == '@' {
		return ClassVariableIdentifier
	}

	if name == "" {
		return LocalIdentifier
	}

	switch name[0] {
	case '@':
		return InstanceIdentifier
	case '$':
		return GlobalIdentifier
	}

	first, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(first) {
		return ConstantIdentifier
	}
	return LocalIdentifier
}

func span(token *lr.TokenValue, value ast.Node) parseutil.StartEndPos {
	if value == nil {
		return token.StartEndPos
	}
	return parseutil.NewStartEndPos(token.Loc(), value.End())
}

// Assignable builds the write node for token.  value may be nil when the
// value is attached later (multiple assignment targets, block parameters).
func (manager *Manager) Assignable(
	token *lr.TokenValue,
	value ast.Node,
) (
	ast.Assignable,
	error,
) {
	name := token.Value
	pos := span(token, value)

	switch Classify(name) {
	case PseudoVariable:
		if name == "self" {
			return nil, NewSemanticError(
				token.StartEndPos,
				"Can't change the value of self")
		}
		return nil, NewSemanticError(token.StartEndPos, "Can't assign to %s", name)

	case ConstantIdentifier:
		if manager.inDef || manager.inSingle > 0 {
			return nil, NewSemanticError(
				token.StartEndPos,
				"dynamic constant assignment")
		}
		return &ast.ConstantDeclaration{
			StartEndPos: pos,
			Name:        name,
			Value:       value,
		}, nil

	case InstanceIdentifier:
		return &ast.InstanceAssignment{
			StartEndPos: pos,
			Name:        name,
			Value:       value,
		}, nil

	case ClassVariableIdentifier:
		if manager.inDef || manager.inSingle > 0 {
			return &ast.ClassVariableAssignment{
				StartEndPos: pos,
				Name:        name,
				Value:       value,
			}, nil
		}
		return &ast.ClassVariableDeclaration{
			StartEndPos: pos,
			Name:        name,
			Value:       value,
		}, nil

	case GlobalIdentifier:
		return &ast.GlobalAssignment{
			StartEndPos: pos,
			Name:        name,
			Value:       value,
		}, nil
	}

	binding, ok := manager.Resolve(name)
	if !ok {
		binding = ast.Binding{Depth: 0, Slot: manager.Declare(name)}
	}

	return &ast.LocalAssignment{
		StartEndPos: pos,
		Name:        name,
		Binding:     binding,
		Value:       value,
	}, nil
}

// DeclareReference builds the read node for token.  An unresolved local
// style name is a zero argument call on self.
func (manager *Manager) DeclareReference(token *lr.TokenValue) (ast.Node, error) {
	name := token.Value
	pos := token.StartEndPos

	switch Classify(name) {
	case PseudoVariable:
		switch name {
		case "self":
			return &ast.Self{StartEndPos: pos}, nil
		case "nil":
			return &ast.NilLiteral{StartEndPos: pos}, nil
		case "true":
			return &ast.TrueLiteral{StartEndPos: pos}, nil
		case "false":
			return &ast.FalseLiteral{StartEndPos: pos}, nil
		case "__FILE__":
			return &ast.StringLiteral{StartEndPos: pos, Value: manager.FileName}, nil
		default: // __LINE__
			return &ast.IntegerLiteral{
				StartEndPos: pos,
				Value:       int64(token.Loc().Line),
			}, nil
		}

	case ConstantIdentifier:
		return &ast.Constant{StartEndPos: pos, Name: name}, nil

	case InstanceIdentifier:
		return &ast.InstanceVariable{StartEndPos: pos, Name: name}, nil

	case ClassVariableIdentifier:
		return &ast.ClassVariable{StartEndPos: pos, Name: name}, nil

	case GlobalIdentifier:
		return &ast.GlobalVariable{StartEndPos: pos, Name: name}, nil
	}

	binding, ok := manager.Resolve(name)
	if !ok {
		return &ast.VariableCall{StartEndPos: pos, Name: name}, nil
	}

	return &ast.LocalVariable{
		StartEndPos: pos,
		Name:        name,
		Binding:     binding,
	}, nil
}

// FormalArgument rejects parameter names which are not local style.
func (manager *Manager) FormalArgument(token *lr.TokenValue) error {
	switch Classify(token.Value) {
	case ConstantIdentifier:
		return NewSemanticError(
			token.StartEndPos,
			"formal argument cannot be a constant")
	case InstanceIdentifier:
		return NewSemanticError(
			token.StartEndPos,
			"formal argument cannot be an instance variable")
	case GlobalIdentifier:
		return NewSemanticError(
			token.StartEndPos,
			"formal argument cannot be a global variable")
	case ClassVariableIdentifier:
		return NewSemanticError(
			token.StartEndPos,
			"formal argument cannot be a class variable")
	case PseudoVariable:
		return NewSemanticError(
			token.StartEndPos,
			"formal argument cannot be %s",
			token.Value)
	}
	return nil
}

// DeclareArgument declares a method parameter in the current frame.
func (manager *Manager) DeclareArgument(token *lr.TokenValue) (int, error) {
	err := manager.FormalArgument(token)
	if err != nil {
		return 0, err
	}

	_, ok := manager.lookup(manager.current, token.Value)
	if ok {
		return 0, NewSemanticError(token.StartEndPos, "duplicated argument name")
	}

	return manager.Declare(token.Value), nil
}

// DeclareShadowing declares a block local parameter, warning when it hides
// a variable of an enclosing frame.
func (manager *Manager) DeclareShadowing(token *lr.TokenValue) (int, error) {
	err := manager.FormalArgument(token)
	if err != nil {
		return 0, err
	}

	name := token.Value
	_, ok := manager.lookup(manager.current, name)
	if ok {
		return 0, NewSemanticError(token.StartEndPos, "duplicated argument name")
	}

	_, ok = manager.Resolve(name)
	if ok {
		manager.warnings.Warning(
			warning.ShadowingVariable,
			token.StartEndPos,
			"shadowing outer local variable - "+name)
	}

	return manager.Declare(name), nil
}
