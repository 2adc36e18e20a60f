package reducer

import (
	"fmt"

	"github.com/pattyshack/garnet/ast"
	"github.com/pattyshack/garnet/parser/lr"
)

type action func(reducer *Reducer, args []lr.Value) (lr.Value, error)

func nodeResult(node ast.Node, err error) (lr.Value, error) {
	if err != nil {
		return lr.Value{}, err
	}
	return lr.NodeVal(node), nil
}

func nodesResult(nodes []ast.Node, err error) (lr.Value, error) {
	if err != nil {
		return lr.Value{}, err
	}
	return lr.NodesVal(nodes), nil
}

func modifierResult(modifier lr.Modifier, err error) (lr.Value, error) {
	if err != nil {
		return lr.Value{}, err
	}
	return lr.ModifierVal(modifier), nil
}

func bindingResult(
	token *lr.TokenValue,
	binding ast.Binding,
	err error,
) (
	lr.Value,
	error,
) {
	if err != nil {
		return lr.Value{}, err
	}
	return lr.BindingVal(token, binding), nil
}

func markerResult(err error) (lr.Value, error) {
	return lr.Value{}, err
}

// argumentOf converts an optional declared parameter binding.
func argumentOf(value lr.Value) *ast.Argument {
	if value.IsEmpty() {
		return nil
	}
	token, binding := value.AsBinding()
	return toArgument(token, binding)
}

func tok(value lr.Value) *lr.TokenValue {
	return value.AsToken()
}

var actions = map[string]action{
	"ToProgram": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToProgram(a[0].AsNode()))
	},
	"NewToStmts": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.NewToStmts(a[0].AsNode()))
	},
	"AddToStmts": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.AddToStmts(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"ErrorToStmts": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ErrorToStmts(a[1].AsNode()))
	},
	"ModifierToStmt": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.ModifierToStmt(a[0].AsNode(), a[1].AsModifier(), a[2].AsNode()))
	},
	"MultipleAssignToStmt": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.MultipleAssignToStmt(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"MrhsAssignToStmt": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.MrhsAssignToStmt(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"AssignToStmt": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.AssignToStmt(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"IfToModifier": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return modifierResult(r.IfToModifier(tok(a[0])))
	},
	"UnlessToModifier": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return modifierResult(r.UnlessToModifier(tok(a[0])))
	},
	"WhileToModifier": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return modifierResult(r.WhileToModifier(tok(a[0])))
	},
	"UntilToModifier": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return modifierResult(r.UntilToModifier(tok(a[0])))
	},
	"AndToExpr": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.AndToExpr(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"OrToExpr": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.OrToExpr(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"NotToExpr": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.NotToExpr(tok(a[0]), a[1].AsNode()))
	},
	"ToValueExpr": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToValueExpr(a[0].AsNode()))
	},
	"FunctionToCommand": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.FunctionToCommand(tok(a[0]), a[1].AsNode()))
	},
	"MethodToCommand": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.MethodToCommand(a[0].AsNode(), tok(a[1]), tok(a[2]), a[3].AsNode()))
	},
	"ReturnToCommand": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ReturnToCommand(tok(a[0]), a[1].AsNode()))
	},
	"BreakToCommand": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.BreakToCommand(tok(a[0]), a[1].AsNode()))
	},
	"NextToCommand": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.NextToCommand(tok(a[0]), a[1].AsNode()))
	},
	"NestedToMlhs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.NestedToMlhs(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"NestedToMlhsInner": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.NestedToMlhsInner(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"NestedToMlhsItem": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.NestedToMlhsItem(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"HeadToMlhsBasic": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.HeadToMlhsBasic(a[0].AsNodes()))
	},
	"HeadItemToMlhsBasic": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.HeadItemToMlhsBasic(a[0].AsNodes(), a[1].AsNode()))
	},
	"HeadSplatToMlhsBasic": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.HeadSplatToMlhsBasic(a[0].AsNodes(), tok(a[1]), a[2].AsNode()))
	},
	"HeadStarToMlhsBasic": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.HeadStarToMlhsBasic(a[0].AsNodes(), tok(a[1])))
	},
	"SplatToMlhsBasic": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.SplatToMlhsBasic(tok(a[0]), a[1].AsNode()))
	},
	"StarToMlhsBasic": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.StarToMlhsBasic(tok(a[0])))
	},
	"NewToMlhsHead": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodesResult(r.NewToMlhsHead(a[0].AsNode(), tok(a[1])))
	},
	"AddToMlhsHead": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodesResult(
			r.AddToMlhsHead(a[0].AsNodes(), a[1].AsNode(), tok(a[2])))
	},
	"VariableToMlhsNode": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.VariableToMlhsNode(tok(a[0])))
	},
	"IndexToMlhsNode": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.IndexToMlhsNode(a[0].AsNode(), tok(a[1]), a[2].AsNode(), tok(a[3])))
	},
	"AttributeToMlhsNode": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.AttributeToMlhsNode(a[0].AsNode(), tok(a[1]), tok(a[2])))
	},
	"VariableToLhs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.VariableToLhs(tok(a[0])))
	},
	"IndexToLhs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.IndexToLhs(a[0].AsNode(), tok(a[1]), a[2].AsNode(), tok(a[3])))
	},
	"AttributeToLhs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.AttributeToLhs(a[0].AsNode(), tok(a[1]), tok(a[2])))
	},
	"AppendToMrhs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.AppendToMrhs(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"ConcatToMrhs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.ConcatToMrhs(a[0].AsNode(), tok(a[1]), tok(a[2]), a[3].AsNode()))
	},
	"SplatToMrhs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.SplatToMrhs(tok(a[0]), a[1].AsNode()))
	},
	"ToVarRef": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToVarRef(tok(a[0])))
	},
	"ToVarLhs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToVarLhs(tok(a[0])))
	},
	"AssignToArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.AssignToArg(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"OpAssignToArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.OpAssignToArg(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"BinaryToArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.BinaryToArg(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"AndToArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.AndToArg(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"OrToArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.OrToArg(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"UnaryMinusToArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.UnaryMinusToArg(tok(a[0]), a[1].AsNode()))
	},
	"NotToArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.NotToArg(tok(a[0]), a[1].AsNode()))
	},
	"ToValueArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToValueArg(a[0].AsNode()))
	},
	"ToValuePrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToValuePrimary(a[0].AsNode()))
	},
	"IntegerToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.IntegerToPrimary(tok(a[0])))
	},
	"FloatToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.FloatToPrimary(tok(a[0])))
	},
	"SymbolToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.SymbolToPrimary(tok(a[0])))
	},
	"BlockCallToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.BlockCallToPrimary(a[0].AsNode(), a[1].AsNode()))
	},
	"BlockFunctionToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.BlockFunctionToPrimary(tok(a[0]), a[1].AsNode()))
	},
	"ParenToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ParenToPrimary(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"ArrayToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ArrayToPrimary(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"HashToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.HashToPrimary(tok(a[0]), a[1].AsNodes(), tok(a[2])))
	},
	"ReturnToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ReturnToPrimary(tok(a[0])))
	},
	"BreakToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.BreakToPrimary(tok(a[0])))
	},
	"NextToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.NextToPrimary(tok(a[0])))
	},
	"BeginToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.BeginToPrimary(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"IfToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.IfToPrimary(
			tok(a[0]), a[1].AsNode(), tok(a[2]), a[3].AsNode(), a[4].AsNode(),
			tok(a[5])))
	},
	"UnlessToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.UnlessToPrimary(
			tok(a[0]), a[1].AsNode(), tok(a[2]), a[3].AsNode(), a[4].AsNode(),
			tok(a[5])))
	},
	"WhileToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.WhileToPrimary(
			tok(a[0]), a[1].AsNode(), tok(a[2]), a[3].AsNode(), tok(a[4])))
	},
	"UntilToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.UntilToPrimary(
			tok(a[0]), a[1].AsNode(), tok(a[2]), a[3].AsNode(), tok(a[4])))
	},
	"ClassToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ClassToPrimary(
			tok(a[0]), tok(a[1]), a[2].AsNode(), a[4].AsNode(), tok(a[5])))
	},
	"SingletonClassToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.SingletonClassToPrimary(
			tok(a[0]), a[2].AsNode(), a[5].AsNode(), tok(a[6])))
	},
	"ModuleToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ModuleToPrimary(
			tok(a[0]), tok(a[1]), a[3].AsNode(), tok(a[4])))
	},
	"MethodToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.MethodToPrimary(
			tok(a[0]), tok(a[1]), a[3].AsNode(), a[4].AsNode(), tok(a[5])))
	},
	"SingletonMethodToPrimary": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.SingletonMethodToPrimary(
			tok(a[0]), a[1].AsNode(), tok(a[3]), a[5].AsNode(), a[6].AsNode(),
			tok(a[7])))
	},
	"FunctionToMethodCall": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.FunctionToMethodCall(tok(a[0]), a[1].AsNode()))
	},
	"MethodToMethodCall": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.MethodToMethodCall(
			a[0].AsNode(), tok(a[1]), tok(a[2]), a[3].AsNode()))
	},
	"IndexToMethodCall": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.IndexToMethodCall(
			a[0].AsNode(), tok(a[1]), a[2].AsNode(), tok(a[3])))
	},
	"ToBraceBlock": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToBraceBlock(
			tok(a[0]), a[2].AsNode(), a[3].AsNode(), tok(a[4])))
	},
	"EnterBlockScope": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return markerResult(r.EnterBlockScope())
	},
	"EmptyToBlockParamDef": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.EmptyToBlockParamDef(tok(a[0]), tok(a[1])))
	},
	"ToBlockParamDef": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToBlockParamDef(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"ListToBlockParam": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ListToBlockParam(a[0].AsNodes()))
	},
	"ListRestToBlockParam": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.ListRestToBlockParam(a[0].AsNodes(), tok(a[1]), a[2].AsNode()))
	},
	"RestToBlockParam": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.RestToBlockParam(a[0].AsNode()))
	},
	"NewToBparamList": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodesResult(r.NewToBparamList(a[0].AsNode()))
	},
	"AddToBparamList": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodesResult(
			r.AddToBparamList(a[0].AsNodes(), tok(a[1]), a[2].AsNode()))
	},
	"ToBparam": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToBparam(tok(a[0])))
	},
	"ToBparamRest": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToBparamRest(tok(a[0]), tok(a[1])))
	},
	"AnonymousToBparamRest": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.AnonymousToBparamRest(tok(a[0])))
	},
	"ToParenArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToParenArgs(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"ToCallArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToCallArgs(a[0].AsNode(), a[1].AsNode()))
	},
	"BlockToCallArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.BlockToCallArgs(a[0].AsNode()))
	},
	"ToOptBlockArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToOptBlockArg(tok(a[0]), a[1].AsNode()))
	},
	"ToBlockArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToBlockArg(tok(a[0]), a[1].AsNode()))
	},
	"NewToArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.NewToArgs(a[0].AsNode()))
	},
	"SplatToArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.SplatToArgs(tok(a[0]), a[1].AsNode()))
	},
	"AppendToArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.AppendToArgs(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"ConcatToArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.ConcatToArgs(a[0].AsNode(), tok(a[1]), tok(a[2]), a[3].AsNode()))
	},
	"NewToAssocs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodesResult(r.NewToAssocs(a[0].AsNode()))
	},
	"AddToAssocs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodesResult(r.AddToAssocs(a[0].AsNodes(), tok(a[1]), a[2].AsNode()))
	},
	"ToAssoc": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToAssoc(a[0].AsNode(), tok(a[1]), a[2].AsNode()))
	},
	"ConcatToString": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ConcatToString(a[0].AsNode(), a[1].AsNode()))
	},
	"ToString1": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToString1(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"AddToStringContents": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.AddToStringContents(a[0].AsNode(), a[1].AsNode()))
	},
	"ContentToStringContent": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ContentToStringContent(tok(a[0])))
	},
	"EvalToStringContent": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(
			r.EvalToStringContent(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"ElsifToIfTail": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ElsifToIfTail(
			tok(a[0]), a[1].AsNode(), tok(a[2]), a[3].AsNode(), a[4].AsNode()))
	},
	"ElseToOptElse": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ElseToOptElse(tok(a[0]), a[1].AsNode()))
	},
	"TermToSuperclass": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.TermToSuperclass(tok(a[0])))
	},
	"ToSuperclass": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToSuperclass(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"EnterClassScope": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return markerResult(r.EnterClassScope())
	},
	"EnterSingletonClassScope": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return markerResult(r.EnterSingletonClassScope())
	},
	"EnterModuleScope": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return markerResult(r.EnterModuleScope())
	},
	"EnterMethodScope": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return markerResult(r.EnterMethodScope())
	},
	"EnterSingletonMethodScope": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return markerResult(r.EnterSingletonMethodScope())
	},
	"ToSingleton": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToSingleton(tok(a[0])))
	},
	"ParenToFArglist": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ParenToFArglist(tok(a[0]), a[1].AsNode(), tok(a[2])))
	},
	"ArgRestToFArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ArgRestToFArgs(
			a[0].AsNodes(), tok(a[1]), argumentOf(a[2]), argumentOf(a[3])))
	},
	"ArgToFArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ArgToFArgs(a[0].AsNodes(), argumentOf(a[1])))
	},
	"RestToFArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.RestToFArgs(argumentOf(a[0]), argumentOf(a[1])))
	},
	"BlockToFArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.BlockToFArgs(argumentOf(a[0])))
	},
	"EmptyToFArgs": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.EmptyToFArgs())
	},
	"NewToFArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodesResult(r.NewToFArg(a[0].AsNode()))
	},
	"AddToFArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodesResult(r.AddToFArg(a[0].AsNodes(), tok(a[1]), a[2].AsNode()))
	},
	"ToFNormArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return nodeResult(r.ToFNormArg(tok(a[0])))
	},
	"ToFRestArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return bindingResult(r.ToFRestArg(tok(a[0]), tok(a[1])))
	},
	"AnonymousToFRestArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return bindingResult(r.AnonymousToFRestArg(tok(a[0])))
	},
	"ToFBlockArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return bindingResult(r.ToFBlockArg(tok(a[0]), tok(a[1])))
	},
	"ToOptFBlockArg": func(r *Reducer, a []lr.Value) (lr.Value, error) {
		return a[1], nil
	},
}

// Dispatcher routes each rule reduction to its semantic action.  Rules
// without an action pass their first value through.
type Dispatcher struct {
	*Reducer

	actions []action
}

var _ lr.Reducer = &Dispatcher{}
var _ lr.Checkpointer = &Dispatcher{}

func NewDispatcher(tables *lr.Tables, reducer *Reducer) (*Dispatcher, error) {
	dispatch := make([]action, len(tables.RuleNames))
	for rule, name := range tables.RuleNames {
		if name == "" {
			continue
		}

		act, ok := actions[name]
		if !ok {
			return nil, fmt.Errorf("rule %d: unknown semantic action %s", rule, name)
		}
		dispatch[rule] = act
	}

	return &Dispatcher{
		Reducer: reducer,
		actions: dispatch,
	}, nil
}

func (dispatcher *Dispatcher) Reduce(
	rule int,
	args []lr.Value,
) (
	lr.Value,
	error,
) {
	if rule < 0 || rule >= len(dispatcher.actions) {
		return lr.Value{}, fmt.Errorf("unexpected rule %d", rule)
	}

	act := dispatcher.actions[rule]
	if act == nil {
		if len(args) > 0 {
			return args[0], nil
		}
		return lr.Value{}, nil
	}
	return act(dispatcher.Reducer, args)
}

func (dispatcher *Dispatcher) Checkpoint() int {
	return dispatcher.Scope.Checkpoint()
}

func (dispatcher *Dispatcher) Restore(checkpoint int) {
	dispatcher.Scope.Restore(checkpoint)
}
