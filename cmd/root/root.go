package root

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "tern",
	Short: "A miniature in-memory data-store server speaking the redis serialization protocol",
	Long:  `tern keeps scalar, hash and set data in a concurrent in-memory store and serves it to any redis protocol client.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	rootCmd.Execute()
}

func AddCommand(cmds ...*cobra.Command) {
	rootCmd.AddCommand(cmds...)
}
