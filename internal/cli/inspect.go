package cli

import (
	"fmt"
	"io"

	"github.com/faanross/simulacra_png/internal/decoder"
	"github.com/spf13/cobra"
)

func init() {
	inspectCommand := &cobra.Command{
		Use:   "inspect <input.png>",
		Short: "List the chunks of a png and whether it carries hidden data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := decoder.Inspect(args[0])
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), args[0], report)
			return nil
		},
	}

	RootCommand.AddCommand(inspectCommand)
}

func printReport(w io.Writer, name string, report *decoder.Report) {
	fmt.Fprintf(w, "%s: %d bytes, %d chunks\n", name, report.Size, len(report.Chunks))
	fmt.Fprintf(w, "%10s  %-4s  %10s  %-8s  %s\n", "OFFSET", "TYPE", "LENGTH", "CRC", "KEYWORD")
	for _, c := range report.Chunks {
		crc := fmt.Sprintf("%08X", c.CRC)
		if !c.CRCValid {
			crc += " (bad)"
		}
		fmt.Fprintf(w, "%10d  %-4s  %10d  %-8s  %s\n", c.Offset, c.Type, c.Length, crc, c.Keyword)
	}
	if report.HasPayload {
		fmt.Fprintln(w, "hidden payload: present")
	} else {
		fmt.Fprintln(w, "hidden payload: none")
	}
}
