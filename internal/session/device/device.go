package device

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mssola/useragent"

	"aegis/internal/session/models"
)

// Describe parses a User-Agent string into a DeviceInfo descriptor: a
// human-readable display name plus a stable fingerprint that keys the
// refresh-token chain.
// Note: the fingerprint does NOT include the IP address (too volatile; the IP
// is recorded on token rows separately for contextual risk scoring).
func Describe(userAgentString string) models.DeviceInfo {
	return models.DeviceInfo{
		DisplayName: DisplayName(userAgentString),
		Fingerprint: Fingerprint(userAgentString),
	}
}

// Fingerprint computes SHA-256(browser|major-version|os|platform) as hex.
// Empty input yields an empty fingerprint and the record joins the shared
// "unknown" chain.
func Fingerprint(userAgentString string) string {
	if userAgentString == "" {
		return ""
	}

	ua := useragent.New(userAgentString)
	browser, version := ua.Browser()

	majorVersion := "unknown"
	if version != "" {
		parts := strings.Split(version, ".")
		if len(parts) > 0 && parts[0] != "" {
			majorVersion = parts[0]
		}
	}

	os := ua.OS()
	platform := "desktop"
	if ua.Mobile() {
		platform = "mobile"
	}

	browser = strings.ToLower(strings.TrimSpace(browser))
	if browser == "" {
		browser = "unknown"
	}
	os = strings.ToLower(strings.TrimSpace(os))
	if os == "" {
		os = "unknown"
	}

	data := fmt.Sprintf("%s|%s|%s|%s", browser, majorVersion, os, platform)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// DisplayName extracts a human-readable device name from a User-Agent string.
// Returns format: "Browser on OS" (e.g. "Chrome on macOS").
func DisplayName(userAgentString string) string {
	if userAgentString == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	os := ua.OS()

	browser = strings.TrimSpace(browser)
	if browser == "" {
		browser = "Unknown Browser"
	}
	os = strings.TrimSpace(os)
	if os == "" {
		os = "Unknown OS"
	}

	return fmt.Sprintf("%s on %s", browser, os)
}
