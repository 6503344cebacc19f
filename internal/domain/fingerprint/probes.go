// Package fingerprint analyses browser probe snapshots for identity lies and
// automation. Probes are collected by the caller; nothing here reads ambient
// browser state.
package fingerprint

import "github.com/ipflix/ipflix/internal/entity"

// Window and document globals inspected by the bot detector
const (
	GlobalChrome                  = "chrome"
	GlobalSafari                  = "safari"
	GlobalPhantom                 = "phantom"
	GlobalPhantomPrivate          = "_phantom"
	GlobalCallPhantom             = "callPhantom"
	GlobalSelenium                = "_selenium"
	GlobalDOMAutomation           = "domAutomation"
	GlobalDOMAutomationController = "domAutomationController"

	DocWebDriverScriptFn  = "__webdriver_script_fn"
	DocWebDriverUnwrapped = "__webdriver_unwrapped"

	// RuntimeOnConnectExternal is present on chrome.runtime in real Chrome
	RuntimeOnConnectExternal = "onConnectExternal"
)

// LieProbe captures the identity surfaces compared for consistency.
type LieProbe struct {
	UserAgent    string   `json:"userAgent" yaml:"userAgent"`
	Platform     string   `json:"platform" yaml:"platform"`
	Language     string   `json:"language" yaml:"language"`
	Languages    []string `json:"languages" yaml:"languages"`
	ScreenWidth  int      `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int      `json:"screenHeight" yaml:"screenHeight"`
	TimezoneName string   `json:"timezoneName" yaml:"timezoneName"`
	WebDriver    bool     `json:"webdriver" yaml:"webdriver"`
	PluginCount  int      `json:"pluginCount" yaml:"pluginCount"`
	// ConnectionRTT is nil when the Network Information API is absent
	ConnectionRTT *float64 `json:"connectionRtt" yaml:"connectionRtt"`
	// WindowGlobals lists the names of the window globals that exist
	WindowGlobals []string `json:"windowGlobals" yaml:"windowGlobals"`
}

// BotProbe captures automation artefacts.
type BotProbe struct {
	DocumentProps []string `json:"documentProps" yaml:"documentProps"`
	// NotificationQueryState is the permissions.query result, empty when the API failed
	NotificationQueryState string `json:"notificationQueryState" yaml:"notificationQueryState"`
	NotificationPermission string `json:"notificationPermission" yaml:"notificationPermission"`
	// RuntimeKeys is nil when chrome.runtime is absent
	RuntimeKeys []string `json:"runtimeKeys" yaml:"runtimeKeys"`
}

// Snapshot is everything collected for one advanced fingerprint analysis.
type Snapshot struct {
	LieProbe   `yaml:",inline"`
	BotProbe   `yaml:",inline"`
	Artifacts  entity.FingerprintArtifacts `json:"artifacts" yaml:"artifacts"`
	Hardware   entity.HardwareProbe        `json:"hardware" yaml:"hardware"`
	Media      entity.MediaProbe           `json:"media" yaml:"media"`
	APIs       entity.APIProbe             `json:"apis" yaml:"apis"`
	Behavioral entity.BehavioralProbe      `json:"behavioral" yaml:"behavioral"`
}

func (p LieProbe) hasGlobal(names ...string) bool {
	return containsAny(p.WindowGlobals, names...)
}

func (p BotProbe) hasDocumentProp(names ...string) bool {
	return containsAny(p.DocumentProps, names...)
}

func containsAny(set []string, names ...string) bool {
	for _, have := range set {
		for _, want := range names {
			if have == want {
				return true
			}
		}
	}
	return false
}
