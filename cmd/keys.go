package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vidkeys/vidkeys/color"
	"github.com/vidkeys/vidkeys/controller"
	"github.com/vidkeys/vidkeys/dispatch"
	"github.com/vidkeys/vidkeys/style"
)

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	keysCmd.Flags().Bool("schema", false, "Print the JSON schema of the --json output")
	keysCmd.MarkFlagsMutuallyExclusive("json", "schema")

	keysCmd.SetOut(os.Stdout)
}

// keysCmd lists the command bindings with the configured step sizes.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the command keys and what they do",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			schema := jsonschema.Reflect(&[]dispatch.Info{})
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(schema))
			return
		}

		opts, err := controller.OptionsFromConfig()
		handleErr(err)

		infos := dispatch.NewKeymap(opts.Dispatch).Describe()

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(infos))
			return
		}

		width := lo.Max(lo.Map(infos, func(i dispatch.Info, _ int) int {
			return len(displayKeys(i.Keys))
		}))

		for _, info := range infos {
			keys := fmt.Sprintf("%-*s", width, displayKeys(info.Keys))
			cmd.Printf("%s  %s %s\n",
				style.Fg(color.Yellow)(keys),
				info.Help,
				style.Faint("("+info.Command+")"),
			)
		}
	},
}

func displayKeys(keys []string) string {
	return strings.Join(lo.Uniq(lo.Map(keys, func(k string, _ int) string {
		if k == " " {
			return "space"
		}
		return k
	})), ", ")
}
