package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindslayer001/tracebug/internal/backend"
	"github.com/mindslayer001/tracebug/internal/core"
	"github.com/mindslayer001/tracebug/internal/editor"
	"github.com/mindslayer001/tracebug/internal/models"
	"github.com/mindslayer001/tracebug/internal/render"
	"github.com/mindslayer001/tracebug/ui/components"
)

var analyzeWidth int

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a file or stdin without the interactive UI",
	Long: `Send one snippet to the backend and print the rendered analysis.
Reads the named file, or stdin when no file is given. Exits non-zero when the
analysis fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		code, err := readSnippet(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		defer func() { _ = logger.Sync() }()

		client := backend.NewClient(resolveBaseURL(cfg), cfg.GetTimeout(), logger)
		return analyze(cmd.Context(), cmd.OutOrStdout(), client, code, analyzeWidth, logger)
	},
}

// errAnalysisFailed signals a Failed outcome after its message was printed
var errAnalysisFailed = errors.New("analysis failed")

// readSnippet returns the snippet with the same line endings the editor would send
func readSnippet(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return editor.NormalizeLineEndings(string(data)), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", &editor.FileReadError{Path: args[0], Err: err}
	}
	return editor.NormalizeLineEndings(string(data)), nil
}

// analyze runs a single submission through the same state rules as the UI
// and prints the resulting response pane
func analyze(ctx context.Context, out io.Writer, analyzer core.Analyzer, code string, width int, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	state := core.NewAnalysisState()
	generation, err := state.Begin(code)
	if err == nil {
		id := uuid.NewString()
		logger.Info("submitting snippet", zap.String("submission", id), zap.Int("bytes", len(code)))

		resp, submitErr := analyzer.SubmitSnippet(ctx, code)
		if submitErr != nil {
			logger.Warn("submission failed", zap.String("submission", id), zap.Error(submitErr))
			state.Fail(generation, core.ErrorMessage(submitErr))
		} else {
			state.Complete(generation, *resp)
		}
	}

	snapshot, _ := state.Snapshot()

	var doc *render.Document
	if snapshot.Kind == models.Succeeded {
		doc = render.NewDocument(snapshot.Response.Message)
	}
	// No block is selected outside the interactive UI
	fmt.Fprintln(out, components.RenderResponse(snapshot, doc, "", -1, width))

	if snapshot.Kind == models.Failed {
		return errAnalysisFailed
	}
	return nil
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeWidth, "width", "w", 100, "render width in columns")
	analyzeCmd.SilenceUsage = true
	rootCmd.AddCommand(analyzeCmd)
}
