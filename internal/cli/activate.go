package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newActivateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Print the shell wrapper that lets `railskit new` cd into the new app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), wrapperScript)
			return err
		},
	}
	return cmd
}

const wrapperScript = `# railskit shell integration
railskit() {
  local _rk_tmp
  _rk_tmp="$(mktemp "${TMPDIR:-/tmp}/railskit.XXXXXX")" || return 1
  RAILSKIT_WRAPPER_ACTIVE=1 RAILSKIT_INSTRUCTION_FILE="$_rk_tmp" command railskit "$@"
  local _rk_status=$?
  if [ -f "$_rk_tmp" ]; then
    local _rk_target
    _rk_target="$(cat "$_rk_tmp")"
    rm -f "$_rk_tmp"
    if [ $_rk_status -eq 0 ] && [ -n "$_rk_target" ]; then
      builtin cd "$_rk_target"
    fi
  fi
  return $_rk_status
}
`
