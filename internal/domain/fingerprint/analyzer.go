package fingerprint

import (
	"context"

	"github.com/ipflix/ipflix/internal/entity"
)

// MaxVoiceNames caps the voice names kept in the media block
const MaxVoiceNames = 10

// Analyze builds the advanced fingerprint for a snapshot. When rec is non-nil
// the mouse signal comes from a bounded wait on the recorder and the
// behavioural block is taken from it; otherwise the snapshot's own
// behavioural block is used as-is.
func Analyze(ctx context.Context, snap Snapshot, rec *BehaviorRecorder) entity.AdvancedFingerprint {
	behavioral := snap.Behavioral
	mouseMoved := behavioral.MouseMovement
	if rec != nil {
		mouseMoved = rec.WaitForMouse(ctx, MouseObservationWindow)
		behavioral = rec.Snapshot(snap.WebDriver)
	}
	behavioral.AutomationDetected = snap.WebDriver

	media := snap.Media
	if len(media.VoiceNames) > MaxVoiceNames {
		media.VoiceNames = media.VoiceNames[:MaxVoiceNames]
	}

	return entity.AdvancedFingerprint{
		FingerprintID: Digest(snap.Artifacts),
		Lies:          LieReport(snap.LieProbe),
		Bot:           BotReport(snap.LieProbe, snap.BotProbe, mouseMoved),
		Hardware:      snap.Hardware,
		Media:         media,
		APIs:          snap.APIs,
		Behavioral:    behavioral,
	}
}
