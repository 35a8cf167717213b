package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/limbicnation/remesh/bridge/obj"
	"github.com/limbicnation/remesh/bridge/remesh"
	"github.com/limbicnation/remesh/bridge/scene"
	"github.com/limbicnation/remesh/bridge/tool"
)

// timePrecision trims elapsed durations for display.
const timePrecision = 10 * time.Millisecond

var (
	runOutput        string
	runExe           string
	runFaces         int
	runVertices      int
	runDeterministic bool
	runSharp         bool
	runBoundaries    bool
	runCrease        float64
)

var runCmd = &cobra.Command{
	Use:   "run <input.obj>",
	Short: "Remesh a mesh file with the external retopology tool",
	Long: `The run command reads an OBJ file, hands it to the configured retopology
executable with the chosen target count and feature-preservation flags, and
writes the remeshed result to a new OBJ file.

Parameters not given on the command line come from the persisted defaults
(see "remesh config"). The executable path must be configured first:

  remesh config set executable_path /path/to/tool`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		req := cfg.Request()
		if cmd.Flags().Changed("faces") {
			req.Mode = remesh.CountFaces
			req.TargetCount = runFaces
		}
		if cmd.Flags().Changed("vertices") {
			if cmd.Flags().Changed("faces") {
				return errors.New("--faces and --vertices are mutually exclusive")
			}
			req.Mode = remesh.CountVertices
			req.TargetCount = runVertices
		}
		if cmd.Flags().Changed("deterministic") {
			req.Deterministic = runDeterministic
		}
		if cmd.Flags().Changed("preserve-sharp") {
			req.PreserveSharp = runSharp
		}
		if cmd.Flags().Changed("align-boundaries") {
			req.AlignBoundaries = runBoundaries
		}
		if cmd.Flags().Changed("crease") {
			req.CreaseAngle = runCrease
		}

		exe := cfg.ExecutablePath
		if runExe != "" {
			exe = runExe
		}

		input := args[0]
		output := runOutput
		if output == "" {
			output = defaultOutputPath(input)
		}

		src, err := loadSourceObject(input)
		if err != nil {
			pterm.Println("❌ " + err.Error())
			return err
		}

		sc := scene.New()
		sc.Add(src)

		p := remesh.NewPipeline(exe)
		p.Invoker.Timeout = cfg.RunTimeout()
		p.KeepFailedRuns = cfg.KeepFailedRuns

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		spinner, _ := pterm.DefaultSpinner.Start("Remeshing, please wait...")
		res, err := p.Run(ctx, sc, src, req)
		if err != nil {
			spinner.Fail(presentRunError(err, res))
			return err
		}
		spinner.Success(fmt.Sprintf("Remeshed %q: %d vertices, %d faces (%s)",
			src.Name, res.Object.Mesh.VertexCount(), res.Object.Mesh.FaceCount(), res.Elapsed.Round(timePrecision)))

		if err := obj.EncodeFile(res.Object.Mesh, output); err != nil {
			pterm.Println("❌ Failed to write " + output + ": " + err.Error())
			return err
		}
		pterm.Println("   Wrote " + output)
		return nil
	},
}

// presentRunError builds the single user-facing message for a failed
// operation, naming the failing stage.
func presentRunError(err error, res *remesh.Result) string {
	var stageErr *remesh.StageError
	msg := err.Error()
	if errors.As(err, &stageErr) {
		switch {
		case errors.Is(err, tool.ErrNoPath), errors.Is(err, tool.ErrNotFound), errors.Is(err, tool.ErrNotExecutable):
			msg = fmt.Sprintf("%v; run \"remesh config set executable_path <path>\"", stageErr.Err)
		case errors.Is(err, tool.ErrTimeout):
			msg = fmt.Sprintf("The retopology tool timed out while %s", stageErr.Stage)
		default:
			msg = fmt.Sprintf("Failed while %s: %v", stageErr.Stage, stageErr.Err)
		}
	}
	if res != nil && res.Exchange != nil {
		msg += fmt.Sprintf(" (exchange files kept at %s)", res.Exchange.Dir)
	}
	return msg
}

// loadSourceObject reads the input file into a scene object named after
// the file.
func loadSourceObject(path string) (*scene.Object, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := obj.DecodeFile(path, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input file %s does not exist", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return scene.NewObject(name, m), nil
}

func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + remesh.RemeshedSuffix + ".obj"
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output OBJ file (default <input>_remeshed.obj)")
	runCmd.Flags().StringVar(&runExe, "exe", "", "override the configured executable path")
	runCmd.Flags().IntVar(&runFaces, "faces", 5000, "target face count")
	runCmd.Flags().IntVar(&runVertices, "vertices", 5000, "target vertex count (instead of --faces)")
	runCmd.Flags().BoolVar(&runDeterministic, "deterministic", false, "fixed-seed mode for repeatable output")
	runCmd.Flags().BoolVar(&runSharp, "preserve-sharp", true, "preserve sharp features and corners")
	runCmd.Flags().BoolVar(&runBoundaries, "align-boundaries", true, "align to mesh boundaries")
	runCmd.Flags().Float64Var(&runCrease, "crease", 30.0, "crease angle threshold in degrees (0 disables)")
	rootCmd.AddCommand(runCmd)
}
