// Package cmd implements the vidkeys command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vidkeys/vidkeys/color"
	"github.com/vidkeys/vidkeys/constant"
	"github.com/vidkeys/vidkeys/icon"
	"github.com/vidkeys/vidkeys/key"
	"github.com/vidkeys/vidkeys/log"
	"github.com/vidkeys/vidkeys/style"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringP("socket", "s", "", "Attach to the mpv instance listening on this IPC socket")
	lo.Must0(viper.BindPFlag(key.PlayerSocket, rootCmd.Flags().Lookup("socket")))

	rootCmd.Flags().Bool("no-tui", false, "Run headless even when attached to a terminal")
	rootCmd.Flags().Bool("no-bind", false, "Do not take over the command keys inside the mpv window")
}

// rootCmd launches or attaches to mpv and runs a session.
var rootCmd = &cobra.Command{
	Use:   constant.Vidkeys + " [media]",
	Short: "Keyboard commands and on-screen feedback for mpv",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Keyboard commands and on-screen feedback for mpv"),
	Example: strings.Join([]string{
		"  " + constant.Vidkeys + " ~/Videos/film.mkv",
		"  mpv --input-ipc-server=/tmp/mpv.sock film.mkv & " + constant.Vidkeys + " --socket /tmp/mpv.sock",
	}, "\n"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if cmd.Flags().Changed("no-bind") {
			viper.Set(key.PlayerBindKeys, false)
		}
		if cmd.Flags().Changed("no-tui") {
			viper.Set(key.TUIEnable, false)
		}

		var target string
		if len(args) == 1 {
			target = args[0]
		}

		socket := viper.GetString(key.PlayerSocket)
		if target == "" && socket == "" {
			handleErr(cmd.Help())
			return
		}

		handleErr(runSession(cmd.Context(), target, socket))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
