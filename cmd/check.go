package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidkeys/vidkeys/constant"
	"github.com/vidkeys/vidkeys/filesystem"
	"github.com/vidkeys/vidkeys/icon"
	"github.com/vidkeys/vidkeys/player"
	"github.com/vidkeys/vidkeys/style"
	"github.com/vidkeys/vidkeys/version"
)

// CheckDependencies verifies that the mpv binary can be found in PATH.
func CheckDependencies(binary string) {
	if _, err := exec.LookPath(binary); err != nil {
		var installCmd string
		switch runtime.GOOS {
		case constant.Darwin:
			installCmd = "brew install mpv"
		case constant.Linux:
			installCmd = "sudo apt install mpv"
		case constant.Windows:
			installCmd = "scoop install mpv"
		}

		printNotice(
			"Missing Dependency",
			fmt.Sprintf("The required dependency '%s' was not found in your PATH.", binary),
			installCmd,
		)
		os.Exit(1)
	}
}

// CheckSocket verifies that path exists and is a unix socket.
func CheckSocket(path string) {
	info, err := filesystem.API().Stat(path)
	if err == nil && info.Mode().Type() == fs.ModeSocket {
		return
	}

	printNotice(
		"No Player",
		fmt.Sprintf("Nothing is listening on '%s'.", path),
		fmt.Sprintf("mpv --input-ipc-server=%s <media>", path),
	)
	os.Exit(1)
}

// CheckPlayerVersion refuses players older than version.MinMPV.
func CheckPlayerVersion(mpv *player.MPV) {
	reported, err := mpv.Version()
	if err != nil {
		handleErr(fmt.Errorf("read mpv version: %w", err))
	}

	ok, err := version.SupportsMPV(reported)
	if err != nil {
		handleErr(err)
	}

	if !ok {
		printNotice(
			"Unsupported Player",
			fmt.Sprintf("%s is too old, vidkeys needs mpv %s or newer.", reported, version.MinMPV),
			"",
		)
		os.Exit(1)
	}
}

// printNotice prints a blocking error box. suggestion, when set, is shown as a command to run.
func printNotice(title, body, suggestion string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	lines := []string{
		style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: %s", icon.Get(icon.Fail), title)),
		"",
		style.New().Foreground(style.Text).Render(body),
	}

	if suggestion != "" {
		lines = append(lines, "", "Try running:", "  "+style.New().Foreground(style.AccentColor).Bold(true).Render(suggestion))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}
