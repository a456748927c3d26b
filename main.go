package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"node.town/voxnote/config"
	"node.town/voxnote/txt"
	"node.town/voxnote/www"
)

var (
	logger *log.Logger

	// startupNotes are flashed once when the recorder screen opens.
	startupNotes []string
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(www.ServeCmd)

	rootCmd.PersistentFlags().
		String("config", "", "Config file (default ./config.yaml or ~/.config/voxnote/config.yaml)")
	rootCmd.PersistentFlags().
		String("server-url", "", "Base URL of the transcription server")
	rootCmd.PersistentFlags().String("log-level", "", "Log level")

	viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server-url"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	logger = log.New(os.Stderr)
	log.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("read .env", "error", err)
	}

	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix("voxnote")
	viper.AutomaticEnv()

	if path, _ := rootCmd.PersistentFlags().GetString("config"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(configDir())
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		startupNotes = append(startupNotes, txt.ConfigMissing)
	case err != nil:
		fmt.Printf("Error reading config file: %s\n", err)
	default:
		startupNotes = append(startupNotes, txt.ConfigLoaded+viper.ConfigFileUsed())
	}

	if level, err := log.ParseLevel(viper.GetString("log_level")); err == nil {
		logger.SetLevel(level)
	}
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "voxnote")
}

var rootCmd = &cobra.Command{
	Use:   "voxnote",
	Short: "voxnote records a voice note and transcribes it",
	Long:  `voxnote captures a short voice note from the microphone, uploads it to a transcription server and shows the transcript.`,
	Run:   runRecord,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type loggers struct {
	main, mic, http, rec *log.Logger
}

// createLoggers styles base and derives the prefixed loggers from it.
func createLoggers(base *log.Logger) loggers {
	base.SetReportCaller(true)
	base.SetCallerFormatter(
		func(file string, line int, funcName string) string {
			path, err := filepath.Rel(".", file)
			if err != nil {
				path = file
			}
			return fmt.Sprintf("%s:%d", path, line)
		},
	)

	styles := log.DefaultStyles()
	styles.Prefix = styles.Prefix.
		Bold(false).Transform(func(s string) string {
		return strings.TrimSuffix(s, ":")
	})
	styles.Levels[log.InfoLevel] = styles.Levels[log.InfoLevel].
		MaxWidth(6).
		MarginRight(1).
		Bold(false)
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].
		MaxWidth(6).
		MarginRight(1).
		Bold(false)
	styles.Message = styles.Message.Bold(true).Width(24)
	styles.Key = styles.Key.MarginLeft(1).
		Bold(false).
		Foreground(lipgloss.Color("#ff8800"))

	base.SetStyles(styles)

	return loggers{
		main: base.WithPrefix("main"),
		mic:  base.WithPrefix("mic"),
		http: base.WithPrefix("http"),
		rec:  base.WithPrefix("rec"),
	}
}

// openFileLogger sends log output to path while the terminal belongs to the
// recorder screen.
func openFileLogger(path string, level log.Level) (*log.Logger, io.Closer, error) {
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	fileLogger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return fileLogger, logFile, nil
}
