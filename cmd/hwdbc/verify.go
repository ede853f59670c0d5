package main

import (
	"fmt"
	"io"

	"github.com/radixdb/hwdbc/internal/reader"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <path>",
		Short: "open a compiled database and report its header and reachable node/value counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args[0], cmd.OutOrStdout())
		},
	}
}

func runVerify(path string, out io.Writer) error {
	f, err := reader.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var nodes, values int
	f.Walk(func(pattern []byte, vals map[string]string) {
		nodes++
		values += len(vals)
	})

	h := f.Header()
	fmt.Fprintf(out, "signature OK, tool_version=%d\n", h.ToolVersion)
	fmt.Fprintf(out, "file_size=%d header_size=%d nodes_len=%d strings_len=%d\n",
		h.FileSize, h.HeaderSize, h.NodesLen, h.StringsLen)
	fmt.Fprintf(out, "reachable patterns with values: %d, total key/value pairs: %d\n", nodes, values)
	return nil
}
