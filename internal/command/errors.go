package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	usecaseErrors "github.com/johnquangdev/meeting-reactions/internal/usecase/errors"
)

// writeCommandError prints err to stderr and returns it for cobra.
func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	if errors.Is(err, usecaseErrors.ErrInvalidInput) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: the export contains a malformed record; fix or remove it and retry")
	}

	return err
}
