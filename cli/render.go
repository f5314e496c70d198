package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"chartd/core/render"
	"github.com/spf13/cobra"
)

type renderOpts struct {
	file    string
	output  string
	width   int
	height  int
	dataURI bool
}

// newRenderCmd renders a payload file offline, the same way POST /api/render does.
func newRenderCmd(global *globalOpts) *cobra.Command {
	opts := renderOpts{width: 400, height: 300}
	cmd := &cobra.Command{
		Use:   "render [payload.json]",
		Short: "Render a chart payload to a PNG or data URI file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.file = args[0]
			}
			if opts.file == "" {
				return fmt.Errorf("a payload file is required (use - for stdin)")
			}
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			logger := global.logger(cfg, "console")

			body, err := readPayload(cmd.InOrStdin(), opts.file)
			if err != nil {
				return err
			}
			theme := render.DefaultTheme().WithBackground(cfg.Render.Background)
			limits := render.Limits{MaxItems: cfg.Render.MaxItems, MaxPixels: cfg.Render.MaxPixels}
			out, err := render.NewRenderer(theme, limits, logger).Render(cmd.Context(), body, opts.width, opts.height)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			for _, s := range out.Skipped {
				logger.Printf("skipped item %d (%q): %v", s.Index, s.Subtype, s.Err)
			}

			data := out.PNG
			if opts.dataURI {
				data = []byte(out.DataURI)
			}
			if err := writeOutput(cmd.OutOrStdout(), opts.output, data); err != nil {
				return err
			}
			logger.Printf("rendered %s job=%s %dx%d items=%d in %s", out.Kind, out.JobID, out.Width, out.Height, out.Items, out.Duration)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "payload file, - for stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVarP(&opts.width, "width", "W", opts.width, "width of one chart tile in pixels")
	cmd.Flags().IntVarP(&opts.height, "height", "H", opts.height, "height of one chart tile in pixels")
	cmd.Flags().BoolVar(&opts.dataURI, "data-uri", false, "write a base64 data URI instead of raw PNG")
	return cmd
}

func readPayload(stdin io.Reader, path string) ([]byte, error) {
	if strings.TrimSpace(path) == "-" {
		return io.ReadAll(stdin)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return body, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
