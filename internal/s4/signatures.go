package s4

import (
	"github.com/funvibe/argmatch/internal/binding"
	"github.com/funvibe/argmatch/internal/config"
)

// Formal parameter lists of the methods-package registration functions.
// Their definitions live in R's base distribution, outside any project, so
// they are written down here instead of being resolved.
var (
	setClassSignature = binding.MustSignature(
		"Class", "representation", "prototype", "contains", "validity", "access",
		"where", "version", "sealed", "package", "S3methods", "slots",
	)
	setRefClassSignature = binding.MustSignature(
		"Class", "fields", "contains", "methods", "where", "inheritPackage", "...",
	)
	setGenericSignature = binding.MustSignature(
		"name", "def", "where", "package", "valueClass", "document", "useAsDefault",
		"genericFunction", "simpleInheritanceOnly", "signature",
	)
	setMethodSignature = binding.MustSignature(
		"f", "signature", "definition", "where", "valueClass", "sealed",
	)
	newSignature = binding.MustSignature("Class", "...")
)

// SignatureOf returns the hard-coded parameter list of a registration
// function, or false for any other name.
func SignatureOf(function string) (binding.Signature, bool) {
	switch function {
	case config.SetClassFuncName:
		return setClassSignature, true
	case config.SetRefClassFuncName:
		return setRefClassSignature, true
	case config.SetGenericFuncName:
		return setGenericSignature, true
	case config.SetMethodFuncName:
		return setMethodSignature, true
	case config.NewFuncName:
		return newSignature, true
	}
	return binding.Signature{}, false
}
