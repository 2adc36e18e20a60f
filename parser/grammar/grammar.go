// Package grammar defines the Ruby subset grammar and compiles it into the
// packed tables consumed by the lr driver.
package grammar

import (
	"fmt"
	"sync"

	"github.com/pattyshack/garnet/parser/lr"
	"github.com/pattyshack/garnet/parser/lrgen"
)

var precedence = []lrgen.Precedence{
	{Associativity: lrgen.NonAssoc, Terminals: []string{"kIF_MOD", "kUNLESS_MOD", "kWHILE_MOD", "kUNTIL_MOD"}},
	{Associativity: lrgen.LeftAssoc, Terminals: []string{"kOR", "kAND"}},
	{Associativity: lrgen.RightAssoc, Terminals: []string{"kNOT"}},
	{Associativity: lrgen.RightAssoc, Terminals: []string{"'='", "tOP_ASGN"}},
	{Associativity: lrgen.LeftAssoc, Terminals: []string{"tOROP"}},
	{Associativity: lrgen.LeftAssoc, Terminals: []string{"tANDOP"}},
	{Associativity: lrgen.NonAssoc, Terminals: []string{"tEQ", "tNEQ"}},
	{Associativity: lrgen.LeftAssoc, Terminals: []string{"'>'", "tGEQ", "'<'", "tLEQ"}},
	{Associativity: lrgen.LeftAssoc, Terminals: []string{"'+'", "'-'"}},
	{Associativity: lrgen.LeftAssoc, Terminals: []string{"'*'", "'/'", "'%'"}},
	{Associativity: lrgen.RightAssoc, Terminals: []string{"tUMINUS"}},
	{Associativity: lrgen.RightAssoc, Terminals: []string{"tPOW"}},
	{Associativity: lrgen.RightAssoc, Terminals: []string{"'!'"}},
}

type production struct {
	rhs    string
	action string
}

type definition struct {
	lhs   string
	rules []production
}

// Productions grouped by left hand side.  The first nonterminal is the start
// symbol.  Rules without an action pass their first value through.
var definitions = []definition{
	{"program", []production{
		{"compstmt", "ToProgram"},
	}},
	{"compstmt", []production{
		{"stmts opt_terms", ""},
	}},
	{"stmts", []production{
		{"none", ""},
		{"stmt", "NewToStmts"},
		{"stmts terms stmt", "AddToStmts"},
		{"error stmt", "ErrorToStmts"},
	}},
	{"stmt", []production{
		{"stmt modifier expr_value", "ModifierToStmt"},
		{"mlhs '=' arg_value", "MultipleAssignToStmt"},
		{"mlhs '=' mrhs", "MultipleAssignToStmt"},
		{"lhs '=' mrhs", "MrhsAssignToStmt"},
		{"lhs '=' command", "AssignToStmt"},
		{"expr", ""},
	}},
	{"modifier", []production{
		{"kIF_MOD", "IfToModifier"},
		{"kUNLESS_MOD", "UnlessToModifier"},
		{"kWHILE_MOD", "WhileToModifier"},
		{"kUNTIL_MOD", "UntilToModifier"},
	}},
	{"expr", []production{
		{"command", ""},
		{"expr kAND expr", "AndToExpr"},
		{"expr kOR expr", "OrToExpr"},
		{"kNOT expr", "NotToExpr"},
		{"arg", ""},
	}},
	{"expr_value", []production{
		{"expr", "ToValueExpr"},
	}},
	{"command", []production{
		{"fcall command_args", "FunctionToCommand"},
		{"primary_value '.' tIDENTIFIER command_args", "MethodToCommand"},
		{"kRETURN call_args", "ReturnToCommand"},
		{"kBREAK call_args", "BreakToCommand"},
		{"kNEXT call_args", "NextToCommand"},
	}},
	{"mlhs", []production{
		{"mlhs_basic", ""},
		{"tLPAREN mlhs_inner ')'", "NestedToMlhs"},
	}},
	{"mlhs_inner", []production{
		{"mlhs_basic", ""},
		{"tLPAREN mlhs_inner ')'", "NestedToMlhsInner"},
	}},
	{"mlhs_basic", []production{
		{"mlhs_head", "HeadToMlhsBasic"},
		{"mlhs_head mlhs_item", "HeadItemToMlhsBasic"},
		{"mlhs_head tSTAR mlhs_node", "HeadSplatToMlhsBasic"},
		{"mlhs_head tSTAR", "HeadStarToMlhsBasic"},
		{"tSTAR mlhs_node", "SplatToMlhsBasic"},
		{"tSTAR", "StarToMlhsBasic"},
	}},
	{"mlhs_item", []production{
		{"mlhs_node", ""},
		{"tLPAREN mlhs_inner ')'", "NestedToMlhsItem"},
	}},
	{"mlhs_head", []production{
		{"mlhs_item ','", "NewToMlhsHead"},
		{"mlhs_head mlhs_item ','", "AddToMlhsHead"},
	}},
	{"mlhs_node", []production{
		{"user_variable", "VariableToMlhsNode"},
		{"keyword_variable", "VariableToMlhsNode"},
		{"primary_value '[' opt_call_args ']'", "IndexToMlhsNode"},
		{"primary_value '.' tIDENTIFIER", "AttributeToMlhsNode"},
	}},
	{"lhs", []production{
		{"user_variable", "VariableToLhs"},
		{"keyword_variable", "VariableToLhs"},
		{"primary_value '[' opt_call_args ']'", "IndexToLhs"},
		{"primary_value '.' tIDENTIFIER", "AttributeToLhs"},
	}},
	{"mrhs", []production{
		{"args ',' arg_value", "AppendToMrhs"},
		{"args ',' tSTAR arg_value", "ConcatToMrhs"},
		{"tSTAR arg_value", "SplatToMrhs"},
	}},
	{"user_variable", []production{
		{"tIDENTIFIER", ""},
		{"tIVAR", ""},
		{"tGVAR", ""},
		{"tCONSTANT", ""},
		{"tCVAR", ""},
	}},
	{"keyword_variable", []production{
		{"kNIL", ""},
		{"kSELF", ""},
		{"kTRUE", ""},
		{"kFALSE", ""},
		{"k__FILE__", ""},
		{"k__LINE__", ""},
	}},
	{"var_ref", []production{
		{"user_variable", "ToVarRef"},
		{"keyword_variable", "ToVarRef"},
	}},
	{"var_lhs", []production{
		{"user_variable", "ToVarLhs"},
	}},
	{"arg", []production{
		{"lhs '=' arg", "AssignToArg"},
		{"var_lhs tOP_ASGN arg", "OpAssignToArg"},
		{"arg '+' arg", "BinaryToArg"},
		{"arg '-' arg", "BinaryToArg"},
		{"arg '*' arg", "BinaryToArg"},
		{"arg '/' arg", "BinaryToArg"},
		{"arg '%' arg", "BinaryToArg"},
		{"arg tPOW arg", "BinaryToArg"},
		{"arg '<' arg", "BinaryToArg"},
		{"arg '>' arg", "BinaryToArg"},
		{"arg tLEQ arg", "BinaryToArg"},
		{"arg tGEQ arg", "BinaryToArg"},
		{"arg tEQ arg", "BinaryToArg"},
		{"arg tNEQ arg", "BinaryToArg"},
		{"arg tANDOP arg", "AndToArg"},
		{"arg tOROP arg", "OrToArg"},
		{"tUMINUS arg", "UnaryMinusToArg"},
		{"'!' arg", "NotToArg"},
		{"primary", ""},
	}},
	{"arg_value", []production{
		{"arg", "ToValueArg"},
	}},
	{"primary_value", []production{
		{"primary", "ToValuePrimary"},
	}},
	{"primary", []production{
		{"tINTEGER", "IntegerToPrimary"},
		{"tFLOAT", "FloatToPrimary"},
		{"tSYMBOL", "SymbolToPrimary"},
		{"strings", ""},
		{"var_ref", ""},
		{"method_call", ""},
		{"method_call brace_block", "BlockCallToPrimary"},
		{"fcall brace_block", "BlockFunctionToPrimary"},
		{"tLPAREN compstmt ')'", "ParenToPrimary"},
		{"tLBRACK aref_args ']'", "ArrayToPrimary"},
		{"tLBRACE assoc_list '}'", "HashToPrimary"},
		{"kRETURN", "ReturnToPrimary"},
		{"kBREAK", "BreakToPrimary"},
		{"kNEXT", "NextToPrimary"},
		{"kBEGIN compstmt kEND", "BeginToPrimary"},
		{"kIF expr_value then compstmt if_tail kEND", "IfToPrimary"},
		{"kUNLESS expr_value then compstmt opt_else kEND", "UnlessToPrimary"},
		{"kWHILE expr_value do_cond compstmt kEND", "WhileToPrimary"},
		{"kUNTIL expr_value do_cond compstmt kEND", "UntilToPrimary"},
		{"kCLASS cpath superclass class_scope compstmt kEND", "ClassToPrimary"},
		{
			"kCLASS tLSHFT expr_value term sclass_scope compstmt kEND",
			"SingletonClassToPrimary",
		},
		{"kMODULE cpath module_scope compstmt kEND", "ModuleToPrimary"},
		{"kDEF fname def_scope f_arglist compstmt kEND", "MethodToPrimary"},
		{
			"kDEF singleton '.' fname sdef_scope f_arglist compstmt kEND",
			"SingletonMethodToPrimary",
		},
	}},
	{"method_call", []production{
		{"fcall paren_args", "FunctionToMethodCall"},
		{"primary_value '.' tIDENTIFIER opt_paren_args", "MethodToMethodCall"},
		{"primary_value '[' opt_call_args ']'", "IndexToMethodCall"},
	}},
	{"fcall", []production{
		{"tIDENTIFIER", ""},
	}},
	{"brace_block", []production{
		{"'{' block_scope opt_block_param compstmt '}'", "ToBraceBlock"},
		{"kDO block_scope opt_block_param compstmt kEND", "ToBraceBlock"},
	}},
	{"block_scope", []production{
		{"", "EnterBlockScope"},
	}},
	{"opt_block_param", []production{
		{"none", ""},
		{"block_param_def", ""},
	}},
	{"block_param_def", []production{
		{"'|' '|'", "EmptyToBlockParamDef"},
		{"'|' block_param '|'", "ToBlockParamDef"},
	}},
	{"block_param", []production{
		{"bparam_list", "ListToBlockParam"},
		{"bparam_list ',' bparam_rest", "ListRestToBlockParam"},
		{"bparam_rest", "RestToBlockParam"},
	}},
	{"bparam_list", []production{
		{"bparam", "NewToBparamList"},
		{"bparam_list ',' bparam", "AddToBparamList"},
	}},
	{"bparam", []production{
		{"variable_name", "ToBparam"},
	}},
	{"bparam_rest", []production{
		{"tSTAR variable_name", "ToBparamRest"},
		{"tSTAR", "AnonymousToBparamRest"},
	}},
	{"variable_name", []production{
		{"tIDENTIFIER", ""},
		{"tCONSTANT", ""},
		{"tIVAR", ""},
		{"tGVAR", ""},
		{"tCVAR", ""},
	}},
	{"opt_paren_args", []production{
		{"none", ""},
		{"paren_args", ""},
	}},
	{"paren_args", []production{
		{"'(' opt_call_args ')'", "ToParenArgs"},
	}},
	{"opt_call_args", []production{
		{"none", ""},
		{"call_args", ""},
	}},
	{"call_args", []production{
		{"args opt_block_arg", "ToCallArgs"},
		{"block_arg", "BlockToCallArgs"},
	}},
	{"command_args", []production{
		{"call_args", ""},
	}},
	{"opt_block_arg", []production{
		{"',' block_arg", "ToOptBlockArg"},
		{"none", ""},
	}},
	{"block_arg", []production{
		{"tAMPER arg_value", "ToBlockArg"},
	}},
	{"args", []production{
		{"arg_value", "NewToArgs"},
		{"tSTAR arg_value", "SplatToArgs"},
		{"args ',' arg_value", "AppendToArgs"},
		{"args ',' tSTAR arg_value", "ConcatToArgs"},
	}},
	{"aref_args", []production{
		{"none", ""},
		{"args", ""},
		{"args ','", ""},
	}},
	{"assoc_list", []production{
		{"none", ""},
		{"assocs", ""},
		{"assocs ','", ""},
	}},
	{"assocs", []production{
		{"assoc", "NewToAssocs"},
		{"assocs ',' assoc", "AddToAssocs"},
	}},
	{"assoc", []production{
		{"arg_value tASSOC arg_value", "ToAssoc"},
	}},
	{"strings", []production{
		{"string", ""},
	}},
	{"string", []production{
		{"string1", ""},
		{"string string1", "ConcatToString"},
	}},
	{"string1", []production{
		{"tSTRING_BEG string_contents tSTRING_END", "ToString1"},
	}},
	{"string_contents", []production{
		{"none", ""},
		{"string_contents string_content", "AddToStringContents"},
	}},
	{"string_content", []production{
		{"tSTRING_CONTENT", "ContentToStringContent"},
		{"tSTRING_DBEG compstmt tSTRING_DEND", "EvalToStringContent"},
	}},
	{"then", []production{
		{"term", ""},
		{"kTHEN", ""},
		{"term kTHEN", ""},
	}},
	{"do_cond", []production{
		{"term", ""},
		{"kDO_COND", ""},
	}},
	{"if_tail", []production{
		{"opt_else", ""},
		{"kELSIF expr_value then compstmt if_tail", "ElsifToIfTail"},
	}},
	{"opt_else", []production{
		{"none", ""},
		{"kELSE compstmt", "ElseToOptElse"},
	}},
	{"cpath", []production{
		{"tCONSTANT", ""},
	}},
	{"superclass", []production{
		{"term", "TermToSuperclass"},
		{"'<' expr_value term", "ToSuperclass"},
	}},
	{"class_scope", []production{
		{"", "EnterClassScope"},
	}},
	{"sclass_scope", []production{
		{"", "EnterSingletonClassScope"},
	}},
	{"module_scope", []production{
		{"", "EnterModuleScope"},
	}},
	{"def_scope", []production{
		{"", "EnterMethodScope"},
	}},
	{"sdef_scope", []production{
		{"", "EnterSingletonMethodScope"},
	}},
	{"singleton", []production{
		{"kSELF", "ToSingleton"},
	}},
	{"fname", []production{
		{"tIDENTIFIER", ""},
		{"tCONSTANT", ""},
	}},
	{"f_arglist", []production{
		{"'(' f_args ')'", "ParenToFArglist"},
		{"f_args term", ""},
	}},
	{"f_args", []production{
		{"f_arg ',' f_rest_arg opt_f_block_arg", "ArgRestToFArgs"},
		{"f_arg opt_f_block_arg", "ArgToFArgs"},
		{"f_rest_arg opt_f_block_arg", "RestToFArgs"},
		{"f_block_arg", "BlockToFArgs"},
		{"none", "EmptyToFArgs"},
	}},
	{"f_arg", []production{
		{"f_norm_arg", "NewToFArg"},
		{"f_arg ',' f_norm_arg", "AddToFArg"},
	}},
	{"f_norm_arg", []production{
		{"variable_name", "ToFNormArg"},
	}},
	{"f_rest_arg", []production{
		{"tSTAR variable_name", "ToFRestArg"},
		{"tSTAR", "AnonymousToFRestArg"},
	}},
	{"f_block_arg", []production{
		{"tAMPER variable_name", "ToFBlockArg"},
	}},
	{"opt_f_block_arg", []production{
		{"',' f_block_arg", "ToOptFBlockArg"},
		{"none", ""},
	}},
	{"opt_terms", []production{
		{"none", ""},
		{"terms", ""},
	}},
	{"terms", []production{
		{"term", ""},
		{"terms ';'", ""},
	}},
	{"term", []production{
		{"';'", ""},
		{"'\\n'", ""},
	}},
	{"none", []production{
		{"", ""},
	}},
}

// Grammar returns the grammar description compiled by Tables.
func Grammar() *lrgen.Grammar {
	grammar := &lrgen.Grammar{
		Start:      definitions[0].lhs,
		Precedence: precedence,
	}

	for _, term := range terminals {
		grammar.Terminals = append(
			grammar.Terminals,
			lrgen.Terminal{Name: term.name, Id: term.id})
	}

	for _, def := range definitions {
		for _, prod := range def.rules {
			grammar.Rules = append(grammar.Rules, lrgen.Rule{
				Lhs:    def.lhs,
				Rhs:    prod.rhs,
				Action: prod.action,
			})
		}
	}

	return grammar
}

var (
	compileOnce sync.Once
	compiled    *lrgen.Result
	compileErr  error
)

// Compiled returns the memoised compilation of the grammar definitions.
func Compiled() (*lrgen.Result, error) {
	compileOnce.Do(func() {
		compiled, compileErr = lrgen.Build(Grammar())
		if compileErr != nil {
			compileErr = fmt.Errorf("invalid ruby grammar: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Tables returns the shared, read-only parse tables.  The generated tables
// are used when tables_gen.go is present; otherwise the grammar is compiled
// on first use.
func Tables() (*lr.Tables, error) {
	if precompiled != nil {
		return precompiled, nil
	}

	result, err := Compiled()
	if err != nil {
		return nil, err
	}
	return result.Tables, nil
}
