// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback Commands - these keys tune the step sizes and bounds applied by the command dispatcher.
const (
	PlayerSeekStep = "player.seek_step"
	PlayerRateStep = "player.rate_step"
	PlayerRateMin  = "player.rate_min"
	PlayerRateMax  = "player.rate_max"
)

// Player Connection - these keys locate the mpv instance and control how vidkeys hooks into it.
const (
	PlayerBinary   = "player.binary"
	PlayerSocket   = "player.socket"
	PlayerBindKeys = "player.bind_keys"
)

// Transient Feedback - these keys govern how long overlays and toasts linger after the last trigger.
const (
	OverlayLinger = "overlay.linger"
)

// Caption Toggling - these keys drive the timed caption sequence and the controls it simulates.
const (
	CaptionsMode        = "captions.mode"
	CaptionsStepDelay   = "captions.step_delay"
	CaptionsOverlap     = "captions.overlap"
	CaptionsSettingsKey = "captions.settings_key"
	CaptionsConfirmKey  = "captions.confirm_key"
	CaptionsResumeKey   = "captions.resume_key"
)

// Host Context - these keys define the entry guard that must pass before the controller attaches.
const (
	HostMediaPrefix = "host.media_prefix"
	HostWaitTimeout = "host.wait_timeout"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the status view shown while attached.
const (
	TUIEnable = "tui.enable"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
