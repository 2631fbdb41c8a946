package analyzer

import (
	"fmt"
	"regexp"
)

// Pattern is an exploit-indicator matcher. *regexp.Regexp satisfies it.
type Pattern interface {
	MatchString(s string) bool
}

// DefaultPatterns is the built-in exploit-indicator list.
var DefaultPatterns = []string{
	`session`, `cookie`, `auth`, `token`, `jwt`, `key`, `api[-_]?key`, `secret`,
	`password`, `credentials`, `oauth`, `admin`, `root`, `user`, `username`, `email`,
	`x-frame-options`, `content-security-policy`, `strict-transport-security`,
	`x-xss-protection`, `x-content-type-options`, `referrer-policy`, `feature-policy`,
	`permissions-policy`, `x-powered-by`, `server`, `x-aspnet-version`, `x-runtime`,
	`x-version`, `x-debug`, `debug`, `trace`, `internal`, `cache-control`, `etag`,
	`if-none-match`, `access-control-allow-origin`, `access-control-allow-credentials`,
	`access-control-expose-headers`, `location`, `origin`, `referer`, `x-forwarded-for`,
	`x-real-ip`, `x-requested-with`, `x-`, `vulnerable`, `cvss`, `cve`,
}

// DefaultPriorityHeaders are evaluated ahead of the full header pass.
var DefaultPriorityHeaders = []string{"Server", "X-Powered-By", "Content-Type"}

// CompilePatterns compiles exprs in order as case-insensitive regular
// expressions. It fails on the first invalid expression and returns no
// partial set.
func CompilePatterns(exprs []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(exprs))
	for i, expr := range exprs {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %d (%q): %w", i, expr, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}
