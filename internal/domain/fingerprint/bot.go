package fingerprint

import (
	"strings"

	"github.com/ipflix/ipflix/internal/domain/scoring"
	"github.com/ipflix/ipflix/internal/entity"
)

const headlessChromeMarker = "HeadlessChrome"

// DetectBot returns the automation indicators found in the probes, in a fixed
// order. mouseMoved is the outcome of the bounded mouse observation window.
func DetectBot(lp LieProbe, bp BotProbe, mouseMoved bool) []scoring.BotIndicator {
	var found []scoring.BotIndicator
	add := func(name string, weight int) {
		found = append(found, scoring.BotIndicator{Name: name, Weight: weight})
	}
	headless := strings.Contains(lp.UserAgent, headlessChromeMarker)

	if lp.WebDriver {
		add("WebDriver detected", scoring.BotWeightWebDriver)
	}
	if lp.hasGlobal(GlobalPhantomPrivate, GlobalPhantom) {
		add("PhantomJS detected", scoring.BotWeightPhantom)
	}
	if lp.hasGlobal(GlobalCallPhantom, GlobalSelenium) {
		add("Selenium detected", scoring.BotWeightSelenium)
	}
	if lp.PluginCount == 0 && headless {
		add("Headless Chrome detected", scoring.BotWeightHeadlessChrome)
	}
	if lp.hasGlobal(GlobalDOMAutomation, GlobalDOMAutomationController) {
		add("DOM automation detected", scoring.BotWeightDOMAutomation)
	}
	if bp.hasDocumentProp(DocWebDriverScriptFn, DocWebDriverUnwrapped) {
		add("WebDriver properties detected", scoring.BotWeightWebDriverProps)
	}
	if !mouseMoved {
		add("No mouse movement detected", scoring.BotWeightNoMouse)
	}
	if bp.NotificationQueryState == "denied" && bp.NotificationPermission == "granted" {
		add("Permission API inconsistency", scoring.BotWeightPermissionMismatch)
	}
	if lp.hasGlobal(GlobalChrome) && bp.RuntimeKeys != nil &&
		!containsAny(bp.RuntimeKeys, RuntimeOnConnectExternal) && headless {
		add("Headless browser indicators", scoring.BotWeightHeadlessRuntime)
	}

	return found
}

// BotReport wraps DetectBot with the capped score and classification.
func BotReport(lp LieProbe, bp BotProbe, mouseMoved bool) entity.BotReport {
	res := scoring.ScoreBot(DetectBot(lp, bp, mouseMoved))
	return entity.BotReport{
		IsBot:      res.IsBot,
		BotScore:   res.Score,
		Indicators: res.Indicators,
	}
}
