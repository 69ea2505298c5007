// Package redact scrubs secret-looking values out of command lines before
// they are written to a store.
package redact

import "regexp"

const mask = "<redacted>"

type Redactor struct {
	secretLike []*regexp.Regexp
	flagValue  *regexp.Regexp
	urlCreds   *regexp.Regexp
}

func Default() *Redactor {
	return &Redactor{
		secretLike: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bghp_[A-Za-z0-9]{20,}\b`),
			regexp.MustCompile(`(?i)\bgithub_pat_[A-Za-z0-9_]{20,}\b`),
			regexp.MustCompile(`(?i)\bAKIA[0-9A-Z]{16}\b`),
			regexp.MustCompile(`(?i)\bxox[baprs]-[A-Za-z0-9-]{10,}\b`),
			regexp.MustCompile(`(?i)\beyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\b`),
			regexp.MustCompile(`(?i)\bauthorization:\s*(bearer|basic)\s+[^\s'"]+`),
		},
		flagValue: regexp.MustCompile(`(?i)(--(?:token|password|pass|apikey|api-key|secret))(=|\s+)('[^']*'|"[^"]*"|[^\s'"]+)`),
		urlCreds:  regexp.MustCompile(`(://)[^/\s:@]+:[^/\s@]+@`),
	}
}

// RedactCommand masks secrets in a raw command line. Everything else,
// including quoting and spacing, is left exactly as it was.
func (r *Redactor) RedactCommand(cmd string) string {
	out := r.flagValue.ReplaceAllString(cmd, "${1}${2}"+mask)
	out = r.urlCreds.ReplaceAllString(out, "${1}"+mask+"@")
	for _, re := range r.secretLike {
		out = re.ReplaceAllString(out, mask)
	}
	return out
}
