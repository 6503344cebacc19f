package entity

// PrivacyLevel is the ordinal of a privacy score, Low < Medium < High < Very High
type PrivacyLevel string

const (
	PrivacyLow      PrivacyLevel = "Low"
	PrivacyMedium   PrivacyLevel = "Medium"
	PrivacyHigh     PrivacyLevel = "High"
	PrivacyVeryHigh PrivacyLevel = "Very High"
)

// Artifact values reported by collectors that could not produce a digest
const (
	ArtifactBlocked     = "blocked"
	ArtifactUnavailable = "unavailable"
)

// FingerprintArtifacts are the raw identifying digests collected client-side
type FingerprintArtifacts struct {
	Canvas  string   `json:"canvas" yaml:"canvas"`
	WebGL   string   `json:"webgl" yaml:"webgl"`
	Audio   string   `json:"audio" yaml:"audio"`
	Fonts   []string `json:"fonts" yaml:"fonts"`
	Plugins []string `json:"plugins" yaml:"plugins"`
}

// DeviceInfo is the observed device profile
type DeviceInfo struct {
	ScreenResolution    string  `json:"screenResolution" yaml:"screenResolution"`
	ColorDepth          int     `json:"colorDepth" yaml:"colorDepth"`
	PixelRatio          float64 `json:"pixelRatio" yaml:"pixelRatio"`
	HardwareConcurrency int     `json:"hardwareConcurrency" yaml:"hardwareConcurrency"`
	DeviceMemory        *int    `json:"deviceMemory" yaml:"deviceMemory"`
	MaxTouchPoints      int     `json:"maxTouchPoints" yaml:"maxTouchPoints"`
	Platform            string  `json:"platform" yaml:"platform"`
	Architecture        string  `json:"architecture" yaml:"architecture"`
}

// NetworkInfo is the observed connection profile
type NetworkInfo struct {
	EffectiveType *string  `json:"effectiveType" yaml:"effectiveType"`
	Downlink      *float64 `json:"downlink" yaml:"downlink"`
	RTT           *float64 `json:"rtt" yaml:"rtt"`
	SaveData      *bool    `json:"saveData" yaml:"saveData"`
	WebRTCIPs     []string `json:"webrtcIPs" yaml:"webrtcIPs"`
}

// PrivacySettings are the privacy toggles observed in the browser. Nil
// pointers mean the collector could not tell.
type PrivacySettings struct {
	DoNotTrack               *string `json:"doNotTrack" yaml:"doNotTrack"`
	IncognitoDetected        bool    `json:"incognitoDetected" yaml:"incognitoDetected"`
	AdBlockerDetected        *bool   `json:"adBlockerDetected" yaml:"adBlockerDetected"`
	CookiesEnabled           bool    `json:"cookiesEnabled" yaml:"cookiesEnabled"`
	JavaEnabled              bool    `json:"javaEnabled" yaml:"javaEnabled"`
	ThirdPartyCookiesBlocked *bool   `json:"thirdPartyCookiesBlocked" yaml:"thirdPartyCookiesBlocked"`
}

// Cookie is a cookie visible to scripts
type Cookie struct {
	Name     string `json:"name" yaml:"name"`
	Domain   string `json:"domain" yaml:"domain"`
	Secure   bool   `json:"secure" yaml:"secure"`
	HTTPOnly bool   `json:"httpOnly" yaml:"httpOnly"`
}

// StorageInfo counts tracking-capable storage
type StorageInfo struct {
	Cookies        []Cookie `json:"cookies" yaml:"cookies"`
	LocalStorage   int      `json:"localStorage" yaml:"localStorage"`
	SessionStorage int      `json:"sessionStorage" yaml:"sessionStorage"`
	IndexedDB      []string `json:"indexedDB" yaml:"indexedDB"`
	ServiceWorkers int      `json:"serviceWorkers" yaml:"serviceWorkers"`
}

// PermissionStates holds permission query results ("granted", "denied", "prompt")
type PermissionStates struct {
	Notifications string `json:"notifications" yaml:"notifications"`
	Geolocation   string `json:"geolocation" yaml:"geolocation"`
	Camera        string `json:"camera" yaml:"camera"`
	Microphone    string `json:"microphone" yaml:"microphone"`
	Battery       bool   `json:"battery" yaml:"battery"`
}

// Capabilities lists the browser features present
type Capabilities struct {
	WebGL          bool `json:"webgl" yaml:"webgl"`
	WebRTC         bool `json:"webrtc" yaml:"webrtc"`
	WebAssembly    bool `json:"webassembly" yaml:"webassembly"`
	WebWorkers     bool `json:"webWorkers" yaml:"webWorkers"`
	SharedWorkers  bool `json:"sharedWorkers" yaml:"sharedWorkers"`
	ServiceWorker  bool `json:"serviceWorker" yaml:"serviceWorker"`
	IndexedDB      bool `json:"indexedDB" yaml:"indexedDB"`
	LocalStorage   bool `json:"localStorage" yaml:"localStorage"`
	SessionStorage bool `json:"sessionStorage" yaml:"sessionStorage"`
}

// PrivacyAuditResult aggregates everything collected in one browser session
// together with the derived privacy score.
type PrivacyAuditResult struct {
	Fingerprint  FingerprintArtifacts `json:"fingerprint" yaml:"fingerprint"`
	Device       DeviceInfo           `json:"device" yaml:"device"`
	Network      NetworkInfo          `json:"network" yaml:"network"`
	Privacy      PrivacySettings      `json:"privacy" yaml:"privacy"`
	Storage      StorageInfo          `json:"storage" yaml:"storage"`
	Permissions  PermissionStates     `json:"permissions" yaml:"permissions"`
	Capabilities Capabilities         `json:"capabilities" yaml:"capabilities"`

	PrivacyScore    int          `json:"privacyScore" yaml:"privacyScore"`
	PrivacyLevel    PrivacyLevel `json:"privacyLevel" yaml:"privacyLevel"`
	Risks           []string     `json:"risks" yaml:"risks"`
	Recommendations []string     `json:"recommendations" yaml:"recommendations"`
}
