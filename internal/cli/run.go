package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/songbatch/internal/download"
	"github.com/ytget/songbatch/internal/logging"
	"github.com/ytget/songbatch/internal/model"
	"github.com/ytget/songbatch/internal/platform"
)

const runCmdName = "run"

type runOptions struct {
	input       string
	playlist    string
	dest        string
	format      string
	interactive bool
}

func newRunCmd(rt *runtime) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   runCmdName + " --input FILE --dest DIR [--format audio|videoAudio]",
		Short: "Download a song list in the terminal without opening the window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, rt, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Song list (.xlsx with a Track Name column, or .txt with one title per line)")
	cmd.Flags().StringVarP(&opts.playlist, "playlist", "p", "", "Import the song list from a YouTube playlist URL instead of a file")
	cmd.Flags().StringVarP(&opts.dest, "dest", "d", "", "Destination directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(model.FormatAudio), "Download format (audio, videoAudio)")
	cmd.Flags().BoolVar(&opts.interactive, "keys", true, "Read p (pause/resume) and c (cancel) commands from stdin")
	cmd.MarkFlagsMutuallyExclusive("input", "playlist")
	return cmd
}

// runJob starts one job and blocks until it ends. SIGINT cancels at the next song boundary.
func runJob(cmd *cobra.Command, rt *runtime, opts runOptions) error {
	ctx := cmd.Context()
	log := logging.GetLogger("cli")

	sink := NewTerminalSink(cmd.OutOrStdout())
	rt.service.SetStatusSink(sink)

	req := download.Request{
		InputPath:   opts.input,
		Destination: strings.TrimSpace(opts.dest),
		Format:      model.Format(opts.format),
	}
	if opts.playlist != "" {
		tracks, err := rt.loader.LoadPlaylist(ctx, opts.playlist)
		if err != nil {
			return err
		}
		req.Tracks = tracks
	}
	if req.Destination != "" {
		if err := platform.CreateDirectoryIfNotExists(req.Destination); err != nil {
			return &model.IOError{Path: req.Destination, Err: err}
		}
		if err := platform.IsWritableDirectory(req.Destination); err != nil {
			return &model.IOError{Path: req.Destination, Err: err}
		}
	}

	job, err := rt.service.Start(ctx, req)
	if err != nil {
		return err
	}
	sink.Println(headerStyle, fmt.Sprintf("Downloading %d songs to %s (%s)", job.Total(), job.Destination, job.Format))

	if opts.interactive {
		sink.Println(streamStyle, "Type p + Enter to pause or resume, c + Enter to cancel")
		go readControls(cmd.InOrStdin(), rt.service, sink)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			log.Info().Msg("Interrupt received, cancelling after the current song")
			_ = rt.service.Cancel()
		case <-done:
		}
	}()

	rt.service.Wait()
	close(done)

	result, ok := sink.Result()
	if ok && result.State == model.JobStateFailed {
		return &model.JobError{JobID: result.JobID, Err: errors.New(result.Error)}
	}
	return nil
}

// readControls maps stdin lines to pause and cancel commands until the job ends
func readControls(in io.Reader, svc download.Downloader, sink *TerminalSink) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		var err error
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "p":
			var paused bool
			paused, err = svc.TogglePause()
			if err == nil && paused {
				sink.Println(warningStyle, symbols["warning"]+" Paused, press p + Enter to resume")
			} else if err == nil {
				sink.Println(pendingStyle, symbols["pending"]+" Resumed")
			}
		case "c":
			err = svc.Cancel()
			if err == nil {
				sink.Println(warningStyle, symbols["warning"]+" Cancelling after the current song")
			}
		default:
			continue
		}
		if errors.Is(err, model.ErrNoJob) {
			return
		}
	}
}
