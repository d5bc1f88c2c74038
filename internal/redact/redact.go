package redact

import (
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules are regex heuristics for credentials git may echo back in its
// diagnostics: remote URLs with userinfo, credential helper output, tokens.
var rules = []rule{
	// URL userinfo, keeping the scheme and host
	{regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*://)[^\s/@]+@`), "${1}" + placeholder + "@"},
	// key=value credentials (credential helper protocol, query strings)
	{regexp.MustCompile(`(?i)\b(password|passwd|token|secret|access_token)=[^\s&]+`), "${1}=" + placeholder},
	// Authorization headers echoed by GIT_CURL_VERBOSE/GIT_TRACE
	{regexp.MustCompile(`(?i)(authorization:\s*)(basic|bearer|token)\s+\S+`), "${1}${2} " + placeholder},
	// Bearer tokens
	{regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`), placeholder},
	// GitHub tokens
	{regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`), placeholder},
	// GitLab personal access tokens
	{regexp.MustCompile(`glpat-[A-Za-z0-9_-]{20,}`), placeholder},
	// AWS access key IDs (CodeCommit remotes)
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), placeholder},
}

// Secrets replaces detected credentials in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.repl)
	}
	return result
}

// Diagnostic turns captured stderr into a single trimmed, redacted message
// fit to show to a user.
func Diagnostic(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return "no diagnostic output"
	}
	return Secrets(msg)
}
