package cli

import (
	"github.com/faanross/simulacra_png/internal/config"
	"github.com/faanross/simulacra_png/internal/encoder"
	"github.com/spf13/cobra"
)

func init() {
	var output string
	var pw passwordFlags

	encodeCommand := &cobra.Command{
		Use:   "encode <input.png> <file>",
		Short: "Encode a file into a png",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := pw.resolve(true)
			if err != nil {
				return err
			}
			return encoder.EncodeFile(args[0], args[1], output, encoder.Options{
				Password: password,
				Mode:     config.Config.OutputMode,
			})
		},
	}
	encodeCommand.Flags().StringVarP(&output, "output", "o", "", "The new png file containing the hidden data")
	encodeCommand.MarkFlagRequired("output")
	pw.register(encodeCommand)

	RootCommand.AddCommand(encodeCommand)
}
