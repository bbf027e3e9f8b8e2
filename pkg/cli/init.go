package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/withgalaxy/trackly/pkg/config"
)

var (
	initYes   bool
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a trackly.config.toml",
	Long: `Create a configuration file in the project root.

Prompts for the app title, default theme and dev server port. Pass --yes to
accept the defaults without prompting.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "accept defaults without prompting")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	path := configPath(dir)
	if fileExists(path) && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if !initYes {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Write(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", filepath.Clean(path))
	return nil
}

func promptConfig(cfg *config.Config) error {
	themes := make([]string, len(config.Themes))
	for i, t := range config.Themes {
		themes[i] = string(t)
	}

	answers := struct {
		Title   string
		Theme   string
		Port    string
		Sidebar bool
	}{}

	questions := []*survey.Question{
		{
			Name:   "title",
			Prompt: &survey.Input{Message: "App title:", Default: cfg.App.Title},
		},
		{
			Name: "theme",
			Prompt: &survey.Select{
				Message: "Default theme:",
				Options: themes,
				Default: string(cfg.App.Theme),
			},
		},
		{
			Name:     "port",
			Prompt:   &survey.Input{Message: "Dev server port:", Default: strconv.Itoa(cfg.Server.Port)},
			Validate: validatePort,
		},
		{
			Name:   "sidebar",
			Prompt: &survey.Confirm{Message: "Start with the sidebar collapsed?", Default: cfg.App.SidebarCollapsed},
		},
	}

	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	port, _ := strconv.Atoi(answers.Port)
	cfg.App.Title = answers.Title
	cfg.App.Theme = config.Theme(answers.Theme)
	cfg.App.SidebarCollapsed = answers.Sidebar
	cfg.Server.Port = port
	return nil
}

func validatePort(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("port must be a number")
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
