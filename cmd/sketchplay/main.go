// Command sketchplay renders drawing scripts to PNG images or PDF documents.
//
//	sketchplay render drawing.toml -o drawing.png
package main

import (
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/oksketch/sketch"
	"github.com/benoitkugler/oksketch/sketchdraw"
	"github.com/benoitkugler/oksketch/sketchpdf"
	"github.com/benoitkugler/oksketch/sketchraster"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// levelFromFlags returns the logging level selected by the
// verbosity flags, which are evaluated in this order:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
func levelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newRootCmd(logOutput io.Writer) *cobra.Command {
	var vv, v, q bool
	root := &cobra.Command{
		Use:          "sketchplay",
		Short:        "Replay drawing scripts",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			handler := slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: levelFromFlags(vv, v, q)})
			slog.SetDefault(slog.New(handler))
		},
	}
	root.PersistentFlags().BoolVar(&vv, "vv", false, "print debug messages")
	root.PersistentFlags().BoolVarP(&v, "verbose", "v", false, "print informational messages")
	root.PersistentFlags().BoolVarP(&q, "quiet", "q", false, "only print errors")

	root.AddCommand(newRenderCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <script.toml>",
		Short: "Render a script to a .png or .pdf file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
			}
			return render(args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, whose extension selects the format (default <script>.png)")
	return cmd
}

func render(scriptFile, output string) error {
	f, err := os.Open(scriptFile)
	if err != nil {
		return err
	}
	defer f.Close()

	script, err := sketchdraw.ReadScript(f)
	if err != nil {
		return fmt.Errorf("%s: %w", scriptFile, err)
	}
	slog.Info("script loaded", "file", scriptFile, "width", script.Width, "height", script.Height, "steps", len(script.Steps))

	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".png":
		return renderPNG(script, output)
	case ".pdf":
		return renderPDF(script, output)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}

func renderPNG(script sketchdraw.Script, output string) error {
	rd := sketchraster.NewCanvas(script.Width, script.Height, color.Transparent)
	if err := sketchdraw.Replay(sketch.NewContext(rd), script); err != nil {
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err = png.Encode(out, rd.Pixels()); err != nil {
		out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	slog.Info("image written", "file", output, "damage", rd.Damage())
	return nil
}

func renderPDF(script sketchdraw.Script, output string) error {
	rd := sketchpdf.NewDocument(float64(script.Width), float64(script.Height))
	if bg, err := sketch.ParseColor(script.Background); err == nil && bg.A != 0 {
		rd.Background = bg
	}
	if err := sketchdraw.Replay(sketch.NewContext(rd), script); err != nil {
		return err
	}
	if err := rd.PDF().OutputFileAndClose(output); err != nil {
		return err
	}
	slog.Info("document written", "file", output)
	return nil
}
