package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	chromeWindowsUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	firefoxLinuxUA  = "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"
	safariMacUA     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"
	chromeAndroidUA = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Mobile Safari/537.36"
	safariIPhoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
	edgeWindowsUA   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0"
)

func TestParseOS(t *testing.T) {
	assert.Equal(t, "Windows", ParseOS(chromeWindowsUA))
	assert.Equal(t, "Linux", ParseOS(firefoxLinuxUA))
	assert.Equal(t, "MacOS", ParseOS(safariMacUA))
	assert.Equal(t, "Android", ParseOS(chromeAndroidUA), "android UAs also contain linux")
	assert.Equal(t, "iOS", ParseOS(safariIPhoneUA), "iphone UAs also contain mac os")
	assert.Equal(t, "Unknown OS", ParseOS("curl/8.5.0"))
}

func TestParseBrowser(t *testing.T) {
	assert.Equal(t, "Chrome", ParseBrowser(chromeWindowsUA))
	assert.Equal(t, "Firefox", ParseBrowser(firefoxLinuxUA))
	assert.Equal(t, "Safari", ParseBrowser(safariMacUA))
	assert.Equal(t, "Edge", ParseBrowser(edgeWindowsUA))
	assert.Equal(t, "Unknown Browser", ParseBrowser("curl/8.5.0"))
}
