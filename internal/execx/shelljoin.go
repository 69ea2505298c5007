package execx

import (
	"github.com/kballard/go-shellquote"
)

func ShellJoin(argv []string) string {
	return shellquote.Join(argv...)
}
