package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/etnz/allocator/config"
	"github.com/rs/zerolog"
)

// ExtensionPrefix is the prefix of external subcommands: 'alloc foo' runs
// 'alloc-foo' when foo is not a builtin subcommand.
const ExtensionPrefix = "alloc-"

// RunExtension attempts to find and execute an external alloc-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The resolved settings are passed to the extension as ALLOCATOR_*
// environment variables.
func RunExtension(ctx context.Context, cfg *config.Config, subcommand string, args []string) (bool, int) {
	log := zerolog.Ctx(ctx)
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug().Err(err).Str("command", externalCmdName).Msg("no extension in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	level := cfg.LogLevel
	if *Verbose {
		level = "debug"
	}
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, config.EnvSetupFile+"="+cfg.SetupFile)
	cmd.Env = append(cmd.Env, config.EnvCurrency+"="+cfg.Currency)
	cmd.Env = append(cmd.Env, config.EnvLogLevel+"="+level)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
