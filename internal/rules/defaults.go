package rules

func defaultRules() []HeaderRule {
	return []HeaderRule{
		{
			Name:             "Server",
			BaseSeverity:     3,
			VulnerableValues: []string{"Apache/2.4.49", "nginx/1.18.0", "IIS/10.0"},
			Suggestion:       "Consider hiding the server version to avoid revealing potential vulnerabilities.",
		},
		{
			Name:             "X-Powered-By",
			BaseSeverity:     5,
			VulnerableValues: []string{"PHP/5.6", "ASP.NET"},
			Suggestion:       "Remove the X-Powered-By header to prevent disclosing the technology stack.",
		},
		{
			Name:         "Content-Type",
			BaseSeverity: 2,
			Suggestion:   "Ensure Content-Type headers specify a charset (e.g., charset=UTF-8) to prevent charset-related attacks.",
		},
		{
			Name:         "Set-Cookie",
			BaseSeverity: 4,
			Suggestion:   "Ensure cookies are set with HttpOnly, Secure, and SameSite attributes for better security.",
		},
		{
			Name:         "X-AspNet-Version",
			BaseSeverity: 5,
			Suggestion:   "Remove the X-AspNet-Version header to prevent disclosing the framework version.",
		},
		{
			Name:         "X-AspNetMvc-Version",
			BaseSeverity: 5,
			Suggestion:   "Remove the X-AspNetMvc-Version header to prevent disclosing the framework version.",
		},
		{
			Name:         "X-Frame-Options",
			BaseSeverity: 3,
			Suggestion:   "Set X-Frame-Options to DENY or SAMEORIGIN to protect against clickjacking attacks.",
		},
		{
			Name:         "X-XSS-Protection",
			BaseSeverity: 3,
			Suggestion:   "Ensure X-XSS-Protection is set to '1; mode=block' to enable XSS filtering.",
		},
		{
			Name:         "Strict-Transport-Security",
			BaseSeverity: 3,
			Suggestion:   "Ensure HSTS is properly configured to enforce HTTPS connections.",
		},
		{
			Name:         "X-Content-Type-Options",
			BaseSeverity: 3,
			Suggestion:   "Set X-Content-Type-Options to 'nosniff' to prevent MIME type sniffing.",
		},
		{
			Name:         "Referrer-Policy",
			BaseSeverity: 3,
			Suggestion:   "Set a Referrer-Policy to control the amount of referrer information sent with requests.",
		},
		{
			Name:         "Feature-Policy",
			BaseSeverity: 3,
			Suggestion:   "Implement a Feature-Policy to control which features can be used in the browser.",
		},
		{
			Name:         "Permissions-Policy",
			BaseSeverity: 3,
			Suggestion:   "Implement a Permissions-Policy to control which permissions can be used in the browser.",
		},
		{
			Name:         "Access-Control-Allow-Origin",
			BaseSeverity: 3,
			Suggestion:   "Ensure Access-Control-Allow-Origin is properly configured to prevent unauthorized cross-origin requests.",
		},
		{
			Name:         "Access-Control-Allow-Credentials",
			BaseSeverity: 3,
			Suggestion:   "Ensure Access-Control-Allow-Credentials is properly configured to prevent unauthorized cross-origin credentials sharing.",
		},
	}
}
