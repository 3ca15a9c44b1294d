package utils

import "strings"

// ParseOS sniffs the operating system out of a User-Agent header. Android is
// checked before Linux and iPhone/iPad before Mac because those user agents
// contain both tokens.
func ParseOS(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "mac os"), strings.Contains(ua, "macos"):
		return "MacOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	}
	return "Unknown OS"
}

// ParseBrowser sniffs the browser out of a User-Agent header. Edge and Opera
// embed "chrome", and Chrome embeds "safari", so the more specific tokens go
// first.
func ParseBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "edge"), strings.Contains(ua, "edg/"):
		return "Edge"
	case strings.Contains(ua, "opera"), strings.Contains(ua, "opr/"):
		return "Opera"
	case strings.Contains(ua, "chromium"):
		return "Chromium"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "safari"):
		return "Safari"
	}
	return "Unknown Browser"
}
