package fingerprint

import (
	"context"
	"regexp"
	"time"
)

// CandidateWindow bounds ICE candidate gathering
const CandidateWindow = 2 * time.Second

var candidateIPv4 = regexp.MustCompile(`([0-9]{1,3}(\.[0-9]{1,3}){3})`)

// CollectCandidateIPs drains ICE candidate lines and returns the distinct IPv4
// addresses they expose, in first-seen order. Collection ends when the channel
// closes, an empty end-of-candidates line arrives, the window elapses or ctx
// is done. The result is never nil.
func CollectCandidateIPs(ctx context.Context, candidates <-chan string, window time.Duration) []string {
	ips := []string{}
	seen := make(map[string]struct{})

	timer := time.NewTimer(window)
	defer timer.Stop()

	for {
		select {
		case line, ok := <-candidates:
			if !ok || line == "" {
				return ips
			}
			m := candidateIPv4.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if _, dup := seen[m[1]]; dup {
				continue
			}
			seen[m[1]] = struct{}{}
			ips = append(ips, m[1])
		case <-timer.C:
			return ips
		case <-ctx.Done():
			return ips
		}
	}
}
