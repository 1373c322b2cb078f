package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/bitacora/internal/config"
	"github.com/Tiliavir/bitacora/internal/prefs"
)

// defaultKeys maps user-facing field names to preference keys.
var defaultKeys = map[string]string{
	"project":  prefs.KeyDefaultProject,
	"activity": prefs.KeyDefaultActivity,
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show the values pre-filled on new entries",
	Args:  cobra.NoArgs,
	RunE:  runDefaultsShow,
}

var defaultsSetCmd = &cobra.Command{
	Use:   "set <project|activity> <value>",
	Short: "Set a default field value for new entries",
	Args:  cobra.ExactArgs(2),
	RunE:  runDefaultsSet,
}

var defaultsUnsetCmd = &cobra.Command{
	Use:   "unset <project|activity>",
	Short: "Clear a default field value",
	Args:  cobra.ExactArgs(1),
	RunE:  runDefaultsUnset,
}

func init() {
	defaultsCmd.AddCommand(defaultsSetCmd)
	defaultsCmd.AddCommand(defaultsUnsetCmd)
}

func openPrefs() (*prefs.Store, error) {
	base, err := config.BaseDir()
	if err != nil {
		return nil, err
	}
	return prefs.Open(prefs.FilePath(base))
}

func defaultKey(field string) (string, error) {
	key, ok := defaultKeys[field]
	if !ok {
		return "", fmt.Errorf("unknown field %q (want project or activity)", field)
	}
	return key, nil
}

func runDefaultsShow(cmd *cobra.Command, args []string) error {
	p, err := openPrefs()
	if err != nil {
		return err
	}
	values := p.All()
	for _, field := range []string{"project", "activity"} {
		v, ok := values[defaultKeys[field]]
		if !ok {
			v = "(unset)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s%s\n", field, v)
	}
	return nil
}

func runDefaultsSet(cmd *cobra.Command, args []string) error {
	key, err := defaultKey(args[0])
	if err != nil {
		return err
	}
	p, err := openPrefs()
	if err != nil {
		return err
	}
	if err := p.Set(key, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Default %s set to %q\n", args[0], args[1])
	return nil
}

func runDefaultsUnset(cmd *cobra.Command, args []string) error {
	key, err := defaultKey(args[0])
	if err != nil {
		return err
	}
	p, err := openPrefs()
	if err != nil {
		return err
	}
	if err := p.Delete(key); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Default %s cleared\n", args[0])
	return nil
}
