package cli

import (
	"github.com/faanross/simulacra_png/internal/config"
	"github.com/faanross/simulacra_png/internal/decoder"
	"github.com/spf13/cobra"
)

func init() {
	var output string
	var pw passwordFlags

	decodeCommand := &cobra.Command{
		Use:   "decode <input.png>",
		Short: "Decode a file hidden in a png",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := pw.resolve(false)
			if err != nil {
				return err
			}
			_, err = decoder.DecodeFile(args[0], output, decoder.Options{
				Password: password,
				Mode:     config.Config.OutputMode,
			})
			return err
		},
	}
	decodeCommand.Flags().StringVarP(&output, "output", "o", "", "The file to write the hidden data into")
	decodeCommand.MarkFlagRequired("output")
	pw.register(decodeCommand)

	RootCommand.AddCommand(decodeCommand)
}
