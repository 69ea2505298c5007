//go:build windows

package execx

import "context"

// ConPTY output is not worth the complexity for a one-shot import.
func runPTY(ctx context.Context, c Cmd) (Result, error) {
	return runPipes(ctx, c)
}
