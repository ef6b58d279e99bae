package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dantte-lp/goradius/internal/fixture"
	"github.com/dantte-lp/goradius/internal/raddict"
	"github.com/dantte-lp/goradius/internal/radius"
)

func encodeCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "encode <fixture.yaml>",
		Short: "Encode a YAML attribute fixture and hex-dump the wire bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEncode(args[0], secret)
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "shared secret override, applied when a job doesn't set one")

	return cmd
}

func runEncode(path, secretOverride string) error {
	jobs, err := fixture.Load(path)
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}

	vendors := raddict.DefaultVendors()

	for i, job := range jobs {
		pkt, cursor, err := job.Build()
		if err != nil {
			return fmt.Errorf("build job %d: %w", i, err)
		}
		if pkt.Secret == "" {
			pkt.Secret = secretOverride
		}
		pkt.Vendors = vendors

		out := make([]byte, 4096)
		written := 0
		for cursor != nil {
			n, next, err := radius.EncodePair(out[written:], pkt, cursor)
			if err != nil {
				return fmt.Errorf("job %d: encode %s: %w", i, cursor.Descriptor.Name, err)
			}
			if n == 0 {
				break
			}
			written += n
			cursor = next
		}

		fmt.Printf("job %d: %d bytes\n", i, written)
		fmt.Println(radius.HexDump(out[:written]))
	}

	return nil
}
