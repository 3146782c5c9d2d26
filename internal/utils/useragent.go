package utils

import (
	"fmt"

	"github.com/mssola/user_agent"
)

// DeviceInfo summarizes the client device parsed from a User-Agent header
type DeviceInfo struct {
	Browser  string `json:"browser"`
	OS       string `json:"os"`
	Platform string `json:"platform"`
	Mobile   bool   `json:"mobile"`
	Bot      bool   `json:"bot"`
}

// ParseUserAgent extracts device information from a raw User-Agent string
func ParseUserAgent(uaString string) DeviceInfo {
	if uaString == "" {
		return DeviceInfo{Browser: "Unknown", OS: "Unknown", Platform: "Unknown"}
	}

	ua := user_agent.New(uaString)
	browser, version := ua.Browser()

	info := DeviceInfo{
		Browser:  browser,
		OS:       ua.OS(),
		Platform: ua.Platform(),
		Mobile:   ua.Mobile(),
		Bot:      ua.Bot(),
	}

	if version != "" {
		info.Browser = fmt.Sprintf("%s %s", browser, version)
	}

	return info
}
