package entity

// LieReport lists inconsistencies between claimed and observed browser identity
type LieReport struct {
	Detected   bool     `json:"detected" yaml:"detected"`
	Count      int      `json:"count" yaml:"count"`
	Details    []string `json:"details" yaml:"details"`
	TrustScore int      `json:"trustScore" yaml:"trustScore"`
	Verdict    string   `json:"verdict" yaml:"verdict"`
}

// BotReport lists automation indicators
type BotReport struct {
	IsBot      bool     `json:"isBot" yaml:"isBot"`
	BotScore   int      `json:"botScore" yaml:"botScore"`
	Indicators []string `json:"indicators" yaml:"indicators"`
}

// HardwareProbe holds observed hardware values
type HardwareProbe struct {
	GPUVendor       string `json:"gpuVendor" yaml:"gpuVendor"`
	GPURenderer     string `json:"gpuRenderer" yaml:"gpuRenderer"`
	Cores           int    `json:"cores" yaml:"cores"`
	Memory          int    `json:"memory" yaml:"memory"`
	Architecture    string `json:"architecture" yaml:"architecture"`
	BatteryCharging *bool  `json:"batteryCharging" yaml:"batteryCharging"`
	BatteryLevel    *int   `json:"batteryLevel" yaml:"batteryLevel"`
}

// MediaProbe holds speech and media device counts
type MediaProbe struct {
	Voices       int      `json:"voices" yaml:"voices"`
	VoiceNames   []string `json:"voiceNames" yaml:"voiceNames"`
	MediaDevices int      `json:"mediaDevices" yaml:"mediaDevices"`
	Cameras      int      `json:"cameras" yaml:"cameras"`
	Microphones  int      `json:"microphones" yaml:"microphones"`
	Speakers     int      `json:"speakers" yaml:"speakers"`
}

// APIProbe holds values read from assorted browser APIs
type APIProbe struct {
	ClientHints        map[string]any `json:"clientHints" yaml:"clientHints"`
	PerformanceEntries int            `json:"performanceEntries" yaml:"performanceEntries"`
	MathPrecision      string         `json:"mathPrecision" yaml:"mathPrecision"`
	ErrorStackFormat   string         `json:"errorStackFormat" yaml:"errorStackFormat"`
	TimezoneName       string         `json:"timezoneName" yaml:"timezoneName"`
}

// BehavioralProbe records which kinds of user input were observed
type BehavioralProbe struct {
	MouseMovement      bool `json:"mouseMovement" yaml:"mouseMovement"`
	KeyboardDetected   bool `json:"keyboardDetected" yaml:"keyboardDetected"`
	TouchDetected      bool `json:"touchDetected" yaml:"touchDetected"`
	AutomationDetected bool `json:"automationDetected" yaml:"automationDetected"`
}

// AdvancedFingerprint is the derived trust/bot analysis plus the raw probes
type AdvancedFingerprint struct {
	FingerprintID string          `json:"fingerprintId,omitempty" yaml:"fingerprintId,omitempty"`
	Lies          LieReport       `json:"lies" yaml:"lies"`
	Bot           BotReport       `json:"bot" yaml:"bot"`
	Hardware      HardwareProbe   `json:"hardware" yaml:"hardware"`
	Media         MediaProbe      `json:"media" yaml:"media"`
	APIs          APIProbe        `json:"apis" yaml:"apis"`
	Behavioral    BehavioralProbe `json:"behavioral" yaml:"behavioral"`
}
