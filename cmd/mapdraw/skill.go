// ABOUTME: Install Claude Code skill for mapdraw
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the mapdraw skill for Claude Code.

This copies the skill definition to ~/.claude/skills/mapdraw/
so Claude Code can use mapdraw commands contextually.`,
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		out := cmd.OutOrStdout()
		skillPath := skillPathFor(home)

		fmt.Fprintln(out, "This will install the mapdraw skill, enabling Claude Code to:")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  • Draw polygons and circles from coordinates or addresses")
		fmt.Fprintln(out, "  • List and remove saved shapes")
		fmt.Fprintln(out, "  • Export shapes to GeoJSON")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Destination:\n  %s\n\n", skillPath)

		if _, err := os.Stat(skillPath); err == nil {
			fmt.Fprintln(out, "Note: A skill file already exists and will be overwritten.")
			fmt.Fprintln(out)
		}

		if !confirm(cmd.InOrStdin(), out, "Install the mapdraw skill?", skillSkipConfirm) {
			return nil
		}

		if _, err := installSkill(home); err != nil {
			return err
		}
		color.Green("✓ Installed mapdraw skill successfully!")
		return nil
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func skillPathFor(home string) string {
	return filepath.Join(home, ".claude", "skills", "mapdraw", "SKILL.md")
}

// installSkill writes the embedded skill under home and returns its path.
func installSkill(home string) (string, error) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return "", fmt.Errorf("failed to read embedded skill: %w", err)
	}

	skillPath := skillPathFor(home)
	if err := os.MkdirAll(filepath.Dir(skillPath), 0750); err != nil { // #nosec G301 - skill dir needs to be readable
		return "", fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(skillPath, content, 0600); err != nil { // #nosec G306 - skill file needs to be readable
		return "", fmt.Errorf("failed to write skill file: %w", err)
	}
	return skillPath, nil
}
