package cli

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/stdmath/version"
)

// versionOutput renders build information as version.Full in text mode
// and as the whole version.Info otherwise.
type versionOutput struct {
	version.Info `yaml:",inline"`
}

func (v versionOutput) Text() string { return version.Full() }

// NewVersionCommand creates the version command.
func NewVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.out.Success(versionOutput{Info: *version.Get()}); err != nil {
				return WrapExitError(ExitFailure, "writing output", err)
			}
			return nil
		},
	}
}
