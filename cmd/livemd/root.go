package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/livemd"
	"github.com/iw2rmb/livemd/internal/logging"
)

func newRootCommand() *cobra.Command {
	opts := defaultOptions()
	cmd := &cobra.Command{
		Use:          "livemd [file]",
		Short:        "Edit a Markdown file with live tables",
		Args:         cobra.MaximumNArgs(1),
		Version:      livemd.Version(),
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd, opts.configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(opts, path)
		},
	}
	opts.addFlags(cmd.Flags())
	return cmd
}

func run(opts options, path string) error {
	logOut := io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log, err := logging.New(logOut, opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}

	text, err := readDocument(path)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"path": path, "bytes": len(text)}).Info("opening document")

	p := tea.NewProgram(newApp(opts, path, text, log), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// readDocument returns the file contents. A missing file opens empty and is
// created on the first save.
func readDocument(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
