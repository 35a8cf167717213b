package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/limbicnation/remesh/bridge/obj"
	"github.com/limbicnation/remesh/bridge/remesh"
	"github.com/limbicnation/remesh/bridge/scene"
	"github.com/limbicnation/remesh/bridge/watch"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch <input.obj>",
	Short: "Re-run the remesh whenever the input file changes",
	Long: `The watch command remeshes the input once, then keeps watching it and
re-runs the pipeline each time the file is saved. Changes arriving while a
run is in progress are coalesced into a single follow-up run. Stop with
Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		input := args[0]
		output := watchOutput
		if output == "" {
			output = defaultOutputPath(input)
		}

		p := remesh.NewPipeline(cfg.ExecutablePath)
		p.Invoker.Timeout = cfg.RunTimeout()
		p.KeepFailedRuns = cfg.KeepFailedRuns
		req := cfg.Request()

		runOnce := func(ctx context.Context) error {
			src, err := loadSourceObject(input)
			if err != nil {
				pterm.Println("❌ " + err.Error())
				return nil // keep watching, the next save may fix it
			}
			sc := scene.New()
			sc.Add(src)
			res, err := p.Run(ctx, sc, src, req)
			if err != nil {
				pterm.Println("❌ " + presentRunError(err, res))
				return nil
			}
			if err := obj.EncodeFile(res.Object.Mesh, output); err != nil {
				pterm.Println("❌ Failed to write " + output + ": " + err.Error())
				return nil
			}
			pterm.Printf("✅ %s -> %s: %d vertices, %d faces (%s)\n",
				input, output, res.Object.Mesh.VertexCount(), res.Object.Mesh.FaceCount(), res.Elapsed.Round(timePrecision))
			return nil
		}

		w, err := watch.New(input, runOnce)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pterm.Println("Watching " + input + " (Ctrl-C to stop)")
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output OBJ file (default <input>_remeshed.obj)")
	rootCmd.AddCommand(watchCmd)
}
