package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"node.town/voxnote/capture"
	"node.town/voxnote/config"
	"node.town/voxnote/notify"
	"node.town/voxnote/recorder"
	"node.town/voxnote/transcribe"
	"node.town/voxnote/ui"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Open the recorder screen",
	Long:  `Open the recorder. Space or enter starts and stops a recording; the note is uploaded for transcription when it stops.`,
	Run:   runRecord,
}

func init() {
	recordCmd.Flags().Duration("max-duration", 0, "Length of a full progress bar")
	viper.BindPFlag("max_duration", recordCmd.Flags().Lookup("max-duration"))
}

func runRecord(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		logger.Fatal("load config", "error", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	fileLogger, logFile, err := openFileLogger(cfg.LogFile, level)
	if err != nil {
		logger.Fatal("open log file", "error", err)
	}
	defer logFile.Close()
	log.SetDefault(fileLogger)

	l := createLoggers(fileLogger)

	client, err := transcribe.NewClient(cfg.ServerURL, l.http)
	if err != nil {
		l.main.Fatal("create transcription client", "error", err)
	}

	board := notify.NewBoard(cfg.NoticeTTL)
	defer board.Close()

	surface := ui.NewSurface()
	ctrl, err := recorder.New(recorder.Options{
		Device:      capture.NewPortAudioDevice(cfg.SampleRate, cfg.FragmentInterval, l.mic),
		Transcriber: client,
		Surface:     surface,
		Notifier:    board,
		MaxDuration: cfg.MaxDuration,
		Logger:      l.rec,
	})
	if err != nil {
		l.main.Fatal("create recorder", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := ui.NewModel(func() { ctrl.Toggle(ctx) }, board.Notices).
		OnStart(func() {
			surface.Started()
			board.Flash(cfg.FlashTTL, startupNotes...)
		})
	p := tea.NewProgram(model)
	surface.Attach(p)
	board.OnChange(surface.Refresh)

	l.main.Info("recorder ready", "server", cfg.ServerURL, "max_duration", cfg.MaxDuration)
	if _, err := p.Run(); err != nil {
		l.main.Error("recorder screen", "error", err)
	}

	cancel()
	if err := ctrl.Close(); err != nil {
		l.main.Error("close recorder", "error", err)
	}
	l.main.Info("bye")
}
