package ast

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	indent = "  "
)

func TreeString(node Node, indent string) string {
	buffer := &bytes.Buffer{}
	_ = PrintTree(buffer, node, indent)
	return buffer.String()
}

func PrintTree(output io.Writer, node Node, indent string) error {
	printer := &treePrinter{
		indent:     indent,
		labelStack: []string{},
		writer:     output,
	}
	node.Walk(printer)
	return printer.err
}

type treePrinter struct {
	indent     string
	labelStack []string
	opened     []bool
	writer     io.Writer
	err        error
}

type child struct {
	label string
	node  Node
}

func (printer *treePrinter) write(value string) {
	if printer.err != nil {
		return
	}

	_, printer.err = io.WriteString(printer.writer, value)
}

func (printer *treePrinter) writeLabel() {
	label := ""
	if len(printer.labelStack) > 0 {
		label = printer.labelStack[len(printer.labelStack)-1]
		printer.labelStack = printer.labelStack[:len(printer.labelStack)-1]
	}

	if len(label) > 0 {
		printer.write("\n")
		printer.write(printer.indent)
		printer.write(label)
	} else {
		printer.write(printer.indent)
	}
}

func (printer *treePrinter) endNode() {
	printer.indent = printer.indent[:len(printer.indent)-len(indent)]
	printer.write("\n")
	printer.write(printer.indent)
	printer.write("]")
}

func (printer *treePrinter) push(labels ...string) {
	printer.indent += indent

	for len(labels) > 0 {
		last := labels[len(labels)-1]
		labels = labels[:len(labels)-1]

		printer.labelStack = append(printer.labelStack, last)
	}
}

func children(labelsAndNodes ...interface{}) []child {
	result := []child{}
	for i := 0; i < len(labelsAndNodes); i += 2 {
		label := labelsAndNodes[i].(string)
		switch node := labelsAndNodes[i+1].(type) {
		case nil:
		case []Node:
			for idx, element := range node {
				if element != nil {
					result = append(
						result,
						child{fmt.Sprintf("%s%d=", label, idx), element})
				}
			}
		case Node:
			if !isNil(node) {
				result = append(result, child{label + "=", node})
			}
		default:
			panic(fmt.Sprintf("unexpected tree printer child: %v", node))
		}
	}
	return result
}

func isNil(node Node) bool {
	switch n := node.(type) {
	case *Parameters:
		return n == nil
	case *Block:
		return n == nil
	case *Argument:
		return n == nil
	}
	return false
}

// node writes the header and either closes the node immediately (leaf) or
// queues the child labels.
func (printer *treePrinter) node(header string, kids []child) {
	printer.write(header)
	if len(kids) == 0 {
		printer.write("]")
		printer.opened = append(printer.opened, false)
		return
	}

	labels := make([]string, 0, len(kids))
	for _, kid := range kids {
		labels = append(labels, kid.label)
	}
	printer.push(labels...)
	printer.opened = append(printer.opened, true)
}

func locals(names []string) string {
	return "[" + strings.Join(names, " ") + "]"
}

func (printer *treePrinter) Enter(n Node) {
	printer.writeLabel()

	switch node := n.(type) {
	case *Root:
		printer.node(
			fmt.Sprintf("[Root: Locals=%s Loc=%s", locals(node.Locals), node.Loc()),
			children("Body", node.Body))
	case *Block:
		printer.node(
			fmt.Sprintf("[Block: Loc=%s", node.Loc()),
			children("Statement", node.Statements))
	case *Newline:
		printer.node("[Newline:", children("Statement", node.Statement))
	case *Begin:
		printer.node("[Begin:", children("Body", node.Body))

	case *IntegerLiteral:
		printer.node(fmt.Sprintf("[IntegerLiteral: Value=%d", node.Value), nil)
	case *FloatLiteral:
		printer.node(fmt.Sprintf("[FloatLiteral: Value=%g", node.Value), nil)
	case *StringLiteral:
		printer.node(fmt.Sprintf("[StringLiteral: Value=%q", node.Value), nil)
	case *InterpolatedString:
		printer.node("[InterpolatedString:", children("Part", node.Parts))
	case *EvalString:
		printer.node("[EvalString:", children("Body", node.Body))
	case *SymbolLiteral:
		printer.node(fmt.Sprintf("[SymbolLiteral: Name=%s", node.Name), nil)
	case *NilLiteral:
		printer.node("[NilLiteral", nil)
	case *ImplicitNil:
		printer.node("[ImplicitNil", nil)
	case *TrueLiteral:
		printer.node("[TrueLiteral", nil)
	case *FalseLiteral:
		printer.node("[FalseLiteral", nil)
	case *Self:
		printer.node("[Self", nil)
	case *Array:
		printer.node("[Array:", children("Element", node.Elements))
	case *Hash:
		pairs := make([]Node, 0, len(node.Pairs))
		for _, pair := range node.Pairs {
			pairs = append(pairs, pair)
		}
		printer.node("[Hash:", children("Pair", pairs))
	case *HashPair:
		printer.node("[HashPair:", children("Key", node.Key, "Value", node.Value))

	case *LocalVariable:
		printer.node(
			fmt.Sprintf(
				"[LocalVariable: Name=%s Depth=%d Slot=%d",
				node.Name,
				node.Depth,
				node.Slot),
			nil)
	case *LocalAssignment:
		printer.node(
			fmt.Sprintf(
				"[LocalAssignment: Name=%s Depth=%d Slot=%d",
				node.Name,
				node.Depth,
				node.Slot),
			children("Value", node.Value))
	case *InstanceVariable:
		printer.node(fmt.Sprintf("[InstanceVariable: Name=%s", node.Name), nil)
	case *InstanceAssignment:
		printer.node(
			fmt.Sprintf("[InstanceAssignment: Name=%s", node.Name),
			children("Value", node.Value))
	case *ClassVariable:
		printer.node(fmt.Sprintf("[ClassVariable: Name=%s", node.Name), nil)
	case *ClassVariableAssignment:
		printer.node(
			fmt.Sprintf("[ClassVariableAssignment: Name=%s", node.Name),
			children("Value", node.Value))
	case *ClassVariableDeclaration:
		printer.node(
			fmt.Sprintf("[ClassVariableDeclaration: Name=%s", node.Name),
			children("Value", node.Value))
	case *GlobalVariable:
		printer.node(fmt.Sprintf("[GlobalVariable: Name=%s", node.Name), nil)
	case *GlobalAssignment:
		printer.node(
			fmt.Sprintf("[GlobalAssignment: Name=%s", node.Name),
			children("Value", node.Value))
	case *Constant:
		printer.node(fmt.Sprintf("[Constant: Name=%s", node.Name), nil)
	case *ConstantDeclaration:
		printer.node(
			fmt.Sprintf("[ConstantDeclaration: Name=%s", node.Name),
			children("Value", node.Value))
	case *MultipleAssignment:
		printer.node(
			"[MultipleAssignment:",
			children(
				"Target", node.Targets,
				"Splat", node.Splat,
				"Value", node.Value))
	case *Star:
		printer.node("[Star", nil)
	case *OpAssignOr:
		printer.node(
			"[OpAssignOr:",
			children("Read", node.Read, "Write", node.Write))
	case *OpAssignAnd:
		printer.node(
			"[OpAssignAnd:",
			children("Read", node.Read, "Write", node.Write))

	case *Call:
		printer.node(
			fmt.Sprintf("[Call: Name=%s", node.Name),
			children(
				"Receiver", node.Receiver,
				"Args", node.Args,
				"Block", node.Block))
	case *FunctionCall:
		printer.node(
			fmt.Sprintf("[FunctionCall: Name=%s", node.Name),
			children("Args", node.Args, "Block", node.Block))
	case *VariableCall:
		printer.node(fmt.Sprintf("[VariableCall: Name=%s", node.Name), nil)
	case *AttributeAssignment:
		printer.node(
			fmt.Sprintf("[AttributeAssignment: Name=%s", node.Name),
			children(
				"Receiver", node.Receiver,
				"Args", node.Args,
				"Value", node.Value))
	case *Splat:
		printer.node("[Splat:", children("Value", node.Value))
	case *ArgsCat:
		printer.node("[ArgsCat:", children("Head", node.Head, "Tail", node.Tail))
	case *ArgsPush:
		printer.node(
			"[ArgsPush:",
			children("Head", node.Head, "Value", node.Value))
	case *BlockPass:
		printer.node(
			"[BlockPass:",
			children("Args", node.Args, "Body", node.Body))
	case *Iter:
		printer.node(
			fmt.Sprintf("[Iter: Locals=%s", locals(node.Locals)),
			children("Params", node.Params, "Body", node.Body))
	case *Parameters:
		var block Node
		if node.Block != nil {
			block = node.Block
		}
		printer.node(
			"[Parameters:",
			children(
				"Required", node.Required,
				"Rest", node.Rest,
				"Block", block))
	case *Argument:
		printer.node(
			fmt.Sprintf("[Argument: Name=%s Slot=%d", node.Name, node.Slot),
			nil)

	case *If:
		printer.node(
			"[If:",
			children(
				"Condition", node.Condition,
				"Then", node.Then,
				"Else", node.Else))
	case *While:
		printer.node(
			fmt.Sprintf("[While: CheckFirst=%v", node.CheckFirst),
			children("Condition", node.Condition, "Body", node.Body))
	case *Until:
		printer.node(
			fmt.Sprintf("[Until: CheckFirst=%v", node.CheckFirst),
			children("Condition", node.Condition, "Body", node.Body))
	case *And:
		printer.node("[And:", children("Left", node.Left, "Right", node.Right))
	case *Or:
		printer.node("[Or:", children("Left", node.Left, "Right", node.Right))
	case *Not:
		printer.node("[Not:", children("Value", node.Value))
	case *Return:
		printer.node("[Return:", children("Value", node.Value))
	case *Break:
		printer.node("[Break:", children("Value", node.Value))
	case *Next:
		printer.node("[Next:", children("Value", node.Value))

	case *ClassDefinition:
		printer.node(
			fmt.Sprintf(
				"[ClassDefinition: Name=%s Locals=%s",
				node.Name,
				locals(node.Locals)),
			children("Superclass", node.Superclass, "Body", node.Body))
	case *SingletonClassDefinition:
		printer.node(
			fmt.Sprintf(
				"[SingletonClassDefinition: Locals=%s",
				locals(node.Locals)),
			children("Receiver", node.Receiver, "Body", node.Body))
	case *ModuleDefinition:
		printer.node(
			fmt.Sprintf(
				"[ModuleDefinition: Name=%s Locals=%s",
				node.Name,
				locals(node.Locals)),
			children("Body", node.Body))
	case *MethodDefinition:
		printer.node(
			fmt.Sprintf(
				"[MethodDefinition: Name=%s Locals=%s",
				node.Name,
				locals(node.Locals)),
			children("Params", node.Params, "Body", node.Body))
	case *SingletonMethodDefinition:
		printer.node(
			fmt.Sprintf(
				"[SingletonMethodDefinition: Name=%s Locals=%s",
				node.Name,
				locals(node.Locals)),
			children(
				"Receiver", node.Receiver,
				"Params", node.Params,
				"Body", node.Body))

	default:
		printer.node(fmt.Sprintf("unhandled node: %v", n), nil)
	}
}

func (printer *treePrinter) Exit(n Node) {
	opened := printer.opened[len(printer.opened)-1]
	printer.opened = printer.opened[:len(printer.opened)-1]
	if opened {
		printer.endNode()
	}
}
