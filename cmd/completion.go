package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cssmin/internal/ui"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for cssmin.

To load completions:

Bash:
  $ source <(cssmin completion bash)

Zsh:
  $ cssmin completion zsh > "${fpath[1]}/_cssmin"

Fish:
  $ cssmin completion fish | source

PowerShell:
  PS> cssmin completion powershell | Out-String | Invoke-Expression

Or run 'cssmin completion install' to set up the current shell.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		if err := generateCompletion(args[0], os.Stdout); err != nil {
			ui.PrintError("%v", err)
			os.Exit(1)
		}
	},
}

var completionInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install shell completion for your current shell",
	Run: func(cmd *cobra.Command, args []string) {
		home, err := os.UserHomeDir()
		if err != nil {
			ui.PrintError("Could not find home directory: %v", err)
			os.Exit(1)
		}

		target, ok := completionTargetFor(detectShell(), home)
		if !ok {
			ui.PrintError("Could not detect a supported shell. Use 'cssmin completion [bash|zsh|fish|powershell]' manually")
			os.Exit(1)
		}

		if err := installCompletion(target); err != nil {
			ui.PrintError("%v", err)
			os.Exit(1)
		}
		ui.PrintSuccess("Installed completion script to %s", target.file)

		if target.rcFile != "" {
			if err := appendOnce(target.rcFile, target.sourceLine, "cssmin"); err != nil {
				ui.PrintWarning("Could not update %s: %v", target.rcFile, err)
				ui.PrintInfo("Please add manually: %s", strings.TrimSpace(target.sourceLine))
			}
		}

		fmt.Fprintln(ui.Out)
		if target.rcFile != "" {
			ui.PrintInfo("Restart your shell or run: source %s", target.rcFile)
		} else {
			ui.PrintInfo("Restart your shell to load completions")
		}
	},
}

// completionTarget is where one shell looks for completion scripts
type completionTarget struct {
	shell      string
	file       string
	rcFile     string // Empty when the shell loads the file by itself
	sourceLine string
}

func completionTargetFor(shell, home string) (completionTarget, bool) {
	switch shell {
	case "zsh":
		dir := filepath.Join(home, ".zsh", "completions")
		return completionTarget{
			shell:      shell,
			file:       filepath.Join(dir, "_cssmin"),
			rcFile:     filepath.Join(home, ".zshrc"),
			sourceLine: fmt.Sprintf("\nfpath=(%s $fpath)\nautoload -Uz compinit && compinit\n", dir),
		}, true
	case "bash":
		file := filepath.Join(home, ".bash_completion.d", "cssmin")
		return completionTarget{
			shell:      shell,
			file:       file,
			rcFile:     filepath.Join(home, ".bashrc"),
			sourceLine: fmt.Sprintf("\n[ -f %s ] && source %s\n", file, file),
		}, true
	case "fish":
		return completionTarget{
			shell: shell,
			file:  filepath.Join(home, ".config", "fish", "completions", "cssmin.fish"),
		}, true
	}
	return completionTarget{}, false
}

func generateCompletion(shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletion(w)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unsupported shell %q", shell)
}

func installCompletion(target completionTarget) error {
	if err := os.MkdirAll(filepath.Dir(target.file), 0755); err != nil {
		return fmt.Errorf("failed to create completion directory: %w", err)
	}
	f, err := os.Create(target.file)
	if err != nil {
		return fmt.Errorf("failed to create completion file: %w", err)
	}
	if err := generateCompletion(target.shell, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// appendOnce appends line to path unless the file already mentions marker
func appendOnce(path, line, marker string) error {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if strings.Contains(string(content), marker) {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	ui.PrintSuccess("Updated %s", path)
	return f.Close()
}

func detectShell() string {
	shell := filepath.Base(os.Getenv("SHELL"))
	for _, name := range []string{"zsh", "bash", "fish"} {
		if strings.Contains(shell, name) {
			return name
		}
	}
	return ""
}

func init() {
	completionCmd.AddCommand(completionInstallCmd)
	rootCmd.AddCommand(completionCmd)
}
