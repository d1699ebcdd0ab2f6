// Package cmdlet is the runtime used by generated cmdlet packages. It binds
// tagged cmdlet fields to command line flags and arguments, validates them and
// normalizes widened parameter values into the types SDK requests need.
//
// Fields are bound by struct tags:
//
//	flag      flag name
//	alias     comma separated alternative names
//	position  index of the positional argument
//	validate  required, min=N, max=N
//	enum      comma separated allowed values
package cmdlet

// Cmdlet is implemented by every generated cmdlet.
type Cmdlet interface {
	// CmdletName returns the Verb-Noun name, e.g. "Get-EC2Instance".
	CmdletName() string
	// OperationName returns the name of the service operation called.
	OperationName() string
}
