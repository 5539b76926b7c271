package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/bikedash/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set bikedash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "dataset_path: %s\n", c.DatasetPath)
		if c.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", c.SheetName)
		}
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		fmt.Fprintf(out, "max_reject_warnings: %d\n", c.MaxRejectWarnings)
		fmt.Fprintf(out, "highlight_color: %s\n", c.HighlightColor)
		fmt.Fprintf(out, "muted_color: %s\n", c.MutedColor)
		fmt.Fprintf(out, "accent_color: %s\n", c.AccentColor)
		fmt.Fprintf(out, "listen_addr: %s\n", c.ListenAddr)
		fmt.Fprintf(out, "read_timeout_sec: %d\n", c.ReadTimeoutSec)
		fmt.Fprintf(out, "watch: %v\n", c.Watch)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// reload without flag overrides so they are not persisted
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "dataset_path":
			c.DatasetPath = val
		case "sheet_name":
			c.SheetName = val
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			c.Delimiter = val
		case "max_reject_warnings":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_reject_warnings: %v", val)
			}
			c.MaxRejectWarnings = i
		case "highlight_color", "muted_color", "accent_color":
			if !isHexColor(val) {
				return fmt.Errorf("invalid color for %s: %s (use #RRGGBB)", key, val)
			}
			switch key {
			case "highlight_color":
				c.HighlightColor = val
			case "muted_color":
				c.MutedColor = val
			default:
				c.AccentColor = val
			}
		case "listen_addr":
			if !strings.Contains(val, ":") {
				return fmt.Errorf("invalid listen_addr: %s (use host:port or :port)", val)
			}
			c.ListenAddr = val
		case "read_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for read_timeout_sec: %v", val)
			}
			c.ReadTimeoutSec = i
		case "watch":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for watch: %w", err)
			}
			c.Watch = b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}
