package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"node.town/voxnote/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a config file interactively",
	Run: func(cmd *cobra.Command, args []string) {
		RunSetup()
	},
}

func RunSetup() {
	logger.Info("Starting voxnote setup...")

	serverURL := viper.GetString("server_url")
	maxSeconds := strconv.Itoa(int(viper.GetDuration("max_duration").Seconds()))
	backend := viper.GetString("backend")
	var geminiAPIKey, openaiAPIKey string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Transcription server URL").
				Value(&serverURL).
				Validate(validateServerURL),
			huh.NewInput().
				Title("Progress bar length in seconds").
				Value(&maxSeconds).
				Validate(validateSeconds),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Backend for `voxnote serve`").
				Options(huh.NewOptions("echo", "gemini", "openai")...).
				Value(&backend),
			huh.NewInput().
				Title("Enter your Google Cloud (Gemini) API Key").
				EchoMode(huh.EchoModePassword).
				Value(&geminiAPIKey),
			huh.NewInput().
				Title("Enter your OpenAI API Key").
				EchoMode(huh.EchoModePassword).
				Value(&openaiAPIKey),
		),
	)

	if err := form.Run(); err != nil {
		logger.Fatal("Error during setup", "error", err)
	}

	values := map[string]any{
		"server_url":   serverURL,
		"max_duration": maxSeconds + "s",
		"backend":      backend,
	}
	if geminiAPIKey != "" {
		values["gemini_api_key"] = geminiAPIKey
	}
	if openaiAPIKey != "" {
		values["openai_api_key"] = openaiAPIKey
	}

	path := viper.ConfigFileUsed()
	if path == "" {
		dir := configDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal("Error creating config directory", "error", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if err := config.Save(viper.GetViper(), path, values); err != nil {
		logger.Fatal("Error saving config", "error", err)
	}
	if _, err := config.Load(viper.GetViper()); err != nil {
		logger.Warn("Saved config does not validate", "error", err)
	}

	logger.Info("Setup completed successfully!", "config", path)
}

func validateServerURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("enter an absolute URL like http://localhost:8000")
	}
	return nil
}

func validateSeconds(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number of seconds")
	}
	return nil
}
