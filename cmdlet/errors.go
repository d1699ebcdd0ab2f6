package cmdlet

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrRepeatedToken    = errors.New("repeated pagination token")
	ErrUnknownSelector  = errors.New("unknown selector")
)

// ParameterError marks err as caused by the value of the named parameter.
func ParameterError(name string, err error) error {
	return errors.Wrapf(errors.Mark(err, ErrInvalidParameter), "parameter %s", name)
}

// RepeatedTokenError is returned when a service hands out a pagination token
// it returned before, which would page forever.
func RepeatedTokenError(token string) error {
	return errors.WithHint(
		errors.Wrapf(ErrRepeatedToken, "%q", token),
		"use --no-auto-iteration to page manually",
	)
}

// UnknownSelectorError lists the valid selectors.
func UnknownSelectorError(selector string, valid []string) error {
	return errors.WithHintf(
		errors.Wrapf(ErrUnknownSelector, "%q", selector),
		"valid selectors: %s", strings.Join(valid, ", "),
	)
}

// Failed annotates err with the cmdlet and operation it occurred in.
func Failed(c Cmdlet, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "%s (%s)", c.CmdletName(), c.OperationName())
}
