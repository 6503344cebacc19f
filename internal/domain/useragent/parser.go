// Package useragent derives coarse browser, OS and device classes from a
// User-Agent header.
package useragent

import "strings"

// Info is the classification of one User-Agent string
type Info struct {
	UserAgent string `json:"userAgent"`
	Browser   string `json:"browser"`
	OS        string `json:"os"`
	Device    string `json:"device"`
}

const unknown = "Unknown"

// Parse classifies ua. Rules are evaluated in order and the first match wins.
func Parse(ua string) Info {
	return Info{
		UserAgent: ua,
		Browser:   Browser(ua),
		OS:        OS(ua),
		Device:    Device(ua),
	}
}

// Browser returns Chrome, Safari, Firefox, Edge, Opera or Unknown.
func Browser(ua string) string {
	switch {
	case strings.Contains(ua, "Chrome") && !strings.Contains(ua, "Edg"):
		return "Chrome"
	case strings.Contains(ua, "Safari") && !strings.Contains(ua, "Chrome"):
		return "Safari"
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "Edg"):
		return "Edge"
	case strings.Contains(ua, "Opera") || strings.Contains(ua, "OPR"):
		return "Opera"
	default:
		return unknown
	}
}

// OS returns the operating system family.
func OS(ua string) string {
	switch {
	case strings.Contains(ua, "Windows NT 10.0"):
		return "Windows 10/11"
	case strings.Contains(ua, "Windows NT"):
		return "Windows"
	case strings.Contains(ua, "Mac OS X"):
		return "macOS"
	case strings.Contains(ua, "Linux"):
		return "Linux"
	case strings.Contains(ua, "Android"):
		return "Android"
	case strings.Contains(ua, "iOS") || strings.Contains(ua, "iPhone") || strings.Contains(ua, "iPad"):
		return "iOS"
	default:
		return unknown
	}
}

// Device returns Mobile, Tablet or Desktop.
func Device(ua string) string {
	switch {
	case strings.Contains(ua, "Mobile") || strings.Contains(ua, "Android"):
		return "Mobile"
	case strings.Contains(ua, "Tablet") || strings.Contains(ua, "iPad"):
		return "Tablet"
	default:
		return "Desktop"
	}
}
