package command

import "context"

// Permission is the outcome of a permission probe: either the command can be
// run by the current user, or it cannot and Reason says why.
type Permission struct {
	Permitted bool
	Reason    string
}

// Permitted is the successful probe result.
func Permitted() Permission {
	return Permission{Permitted: true}
}

// Denied is the failed probe result.
func Denied(reason string) Permission {
	return Permission{Reason: reason}
}

// Probe runs the command once and discards its output. Any failure, whether
// the binary is missing, the user lacks privileges or the command exits
// non-zero, is reported as Denied rather than as an error.
func Probe(ctx context.Context, r Runner, name string, args ...string) Permission {
	if _, err := r.Run(ctx, name, args...); err != nil {
		return Denied(err.Error())
	}
	return Permitted()
}
