// Package classifier maps raw (process name, window title) pairs to a display
// application name and a cleaned file/tab label, and recognizes transient
// window titles that should not start a new session.
package classifier

import (
	"regexp"
	"strings"
)

// appDisplay maps known process names to user-friendly application names.
var appDisplay = map[string]string{
	"WINWORD.EXE":  "MS Word",
	"EXCEL.EXE":    "MS Excel",
	"POWERPNT.EXE": "MS PowerPoint",
	"ONENOTE.EXE":  "MS OneNote",
	"OUTLOOK.EXE":  "Outlook",
	"CHROME.EXE":   "Chrome",
	"MSEDGE.EXE":   "MS Edge",
	"FIREFOX.EXE":  "Firefox",
	"ACRORD32.EXE": "Adobe Reader",
	"NOTEPAD.EXE":  "Notepad",
	"EXPLORER.EXE": "File Explorer",
	"MANUAL":       "Manual",
}

// knownSuffixes are product-name suffixes stripped from window titles.
var knownSuffixes = []string{
	" - Word",
	" - Excel",
	" - PowerPoint",
	" - OneNote",
	" - Outlook",
	" - Adobe Acrobat Reader",
	" - Notepad",
	" - Google Chrome",
	" - Microsoft Edge",
	" - Mozilla Firefox",
}

// browserApps are applications whose titles carry tab noise to collapse.
var browserApps = map[string]bool{
	"Chrome":  true,
	"MS Edge": true,
	"Firefox": true,
}

// transientPhrases denote intermediate application states (save dialogs,
// placeholder documents). A label starting with any of these is folded into
// the last known real label for the application. The tracker relies on this
// set; it is not user-configurable.
var transientPhrases = []string{
	"file naming",
	"document",
	"save new document",
	"uploading to server",
	"unsaved document",
}

var morePagesPattern = regexp.MustCompile(`^(.+?) and \d+ more pages`)

// Classify converts a raw process name and window title into a display
// application name and a cleaned file/tab label. It is pure and total:
// malformed input degrades to a best-effort string, never an error.
func Classify(processName, windowTitle string) (app, label string) {
	app = displayName(processName)
	label = strings.TrimSpace(windowTitle)

	// Outlook titles look like "Subject - Inbox - Outlook"; rewrite to
	// indicate direction based on the folder segment.
	if strings.EqualFold(app, "Outlook") && strings.Contains(label, " - ") {
		parts := strings.Split(label, " - ")
		if len(parts) >= 3 {
			subject := strings.TrimSpace(parts[0])
			switch strings.ToLower(strings.TrimSpace(parts[1])) {
			case "inbox":
				label = "From: " + subject
			case "sent items", "outbox", "drafts":
				label = "To: " + subject
			default:
				label = subject
			}
		}
	}

	for _, suffix := range knownSuffixes {
		if strings.HasSuffix(label, suffix) {
			label = strings.TrimSpace(label[:len(label)-len(suffix)])
		}
	}

	// Browsers: drop the "and N more pages" tail and keep only the first
	// hyphen-separated segment (the page title).
	if browserApps[app] {
		if m := morePagesPattern.FindStringSubmatch(label); m != nil {
			label = strings.TrimSpace(m[1])
		}
		if strings.Contains(label, " - ") {
			label = strings.TrimSpace(strings.Split(label, " - ")[0])
		}
	}

	label = strings.TrimSpace(strings.ReplaceAll(label, "​", ""))
	return app, label
}

// displayName resolves a process name to its display name, falling back to a
// capitalized stem of the process name for unknown processes.
func displayName(processName string) string {
	if display, ok := appDisplay[strings.ToUpper(processName)]; ok {
		return display
	}
	stem := processName
	if idx := strings.IndexByte(stem, '.'); idx >= 0 {
		stem = stem[:idx]
	}
	if stem == "" {
		return processName
	}
	return strings.ToUpper(stem[:1]) + strings.ToLower(stem[1:])
}

// IsTransient reports whether a label denotes an intermediate application
// state rather than a real document or tab.
func IsTransient(app, label string) bool {
	lower := strings.ToLower(label)
	for _, phrase := range transientPhrases {
		if strings.HasPrefix(lower, phrase) {
			return true
		}
	}
	return false
}
