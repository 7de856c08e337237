package config

// VariadicName is the token that marks the rest parameter in a formal
// parameter list. A variadic parameter may also be written as "name=...".
const VariadicName = "..."

// VariadicSuffix marks a named variadic parameter ("fth=...").
const VariadicSuffix = "=" + VariadicName

// PipeOperators are the forward-pipe operators whose left operand is
// injected as the first argument of the call on their right.
var PipeOperators = []string{"%>%", "|>"}

// IsPipeOperator reports whether op is one of PipeOperators.
func IsPipeOperator(op string) bool {
	for _, p := range PipeOperators {
		if p == op {
			return true
		}
	}
	return false
}

// IsVerbose enables per-case trace logging in the command line tool.
// This is set once at startup in main.go.
var IsVerbose = false

// Object-system registration function names
const (
	SetClassFuncName    = "setClass"
	SetRefClassFuncName = "setRefClass"
	SetGenericFuncName  = "setGeneric"
	SetMethodFuncName   = "setMethod"
	NewFuncName         = "new"
)

// Parameter names the object-system extractor reads
const (
	ClassParamName          = "Class"
	SlotsParamName          = "slots"
	RepresentationParamName = "representation"
	ContainsParamName       = "contains"
	FieldsParamName         = "fields"
	MethodsParamName        = "methods"
	NameParamName           = "name"
	DefParamName            = "def"
	ValueClassParamName     = "valueClass"
	GenericParamName        = "f"
	SignatureParamName      = "signature"
	DefinitionParamName     = "definition"
)

// Default file names
const (
	CaseFileName    = "argmatch.yaml"
	CaseFileAltName = "argmatch.yml"
	IndexFileName   = "argmatch.db"
)
