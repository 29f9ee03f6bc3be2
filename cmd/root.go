package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/caedis/fabric-mod-manager/internal/config"
	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/caedis/fabric-mod-manager/internal/profile"
	"github.com/caedis/fabric-mod-manager/internal/prompt"
	"github.com/caedis/fabric-mod-manager/internal/repository"
	"github.com/caedis/fabric-mod-manager/internal/updater"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	instanceDir   string
	positionalDir string
	gameVersion   string
	repositoryURL string
	profileName   string
	verbose       bool
	logFile       string
	dryRun        bool
)

// locate and stdin are replaced in tests.
var locate config.Locator = config.NewLocator(config.SystemEnvironment())

var stdin io.Reader = os.Stdin

var rootCmd = &cobra.Command{
	Use:   "fabric-mod-manager [install-directory] <command>",
	Short: "Manage Fabric mods in a Minecraft installation",
	Long: `Add, remove and update Fabric mod jars in a Minecraft installation.

The installation is the directory given before the command, the --instance-dir
flag, the current directory when it contains a mods folder, or the launcher's
default game directory.

Latest versions come from a mod repository server set with --repository-url or
the ` + repository.EnvURL + ` environment variable.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Apply profile defaults for flags not explicitly set by the user.
		if profileName != "" {
			p, err := profile.Load(profileName)
			if err != nil {
				return err
			}
			if p.InstanceDir != nil && !cmd.Flags().Changed("instance-dir") {
				instanceDir = *p.InstanceDir
			}
			if p.GameVersion != nil && !cmd.Flags().Changed("game-version") {
				gameVersion = *p.GameVersion
			}
			if p.RepositoryURL != nil && !cmd.Flags().Changed("repository-url") {
				repositoryURL = *p.RepositoryURL
			}
			if p.Verbose != nil && !cmd.Flags().Changed("verbose") {
				verbose = *p.Verbose
			}
			if p.LogFile != nil && !cmd.Flags().Changed("log-file") {
				logFile = *p.LogFile
			}
		}
		if positionalDir != "" && !cmd.Flags().Changed("instance-dir") {
			instanceDir = positionalDir
		}
		if env := os.Getenv(repository.EnvURL); env != "" && !cmd.Flags().Changed("repository-url") {
			repositoryURL = env
		}

		logging.SetVerbose(verbose)
		if err := logging.SetOutputFile(logFile); err != nil {
			return fmt.Errorf("opening log file %q: %w", logFile, err)
		}
		logging.Debugf("Verbose: options instance-dir=%q game-version=%q repository-url=%q profile=%q\n", instanceDir, gameVersion, repositoryURL, profileName)
		return nil
	},
}

func Execute() {
	args := splitInstallDir(os.Args[1:])
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	closeErr := logging.Close()
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", closeErr)
		if err == nil {
			os.Exit(1)
		}
	}
	if err != nil {
		logging.Errorf("Error: %v\n", err)
		if isUsageError(err) {
			if cmd, _, findErr := rootCmd.Find(args); findErr == nil && cmd != nil {
				_ = cmd.Usage()
			} else {
				_ = rootCmd.Usage()
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return wrapUsageError(err)
	})

	rootCmd.PersistentFlags().StringVarP(&instanceDir, "instance-dir", "d", "", "Minecraft installation directory (default: current directory if it has mods/, else the launcher default)")
	rootCmd.PersistentFlags().StringVar(&gameVersion, "game-version", "", "Minecraft version to install mods for (default: detect from versions/)")
	rootCmd.PersistentFlags().StringVar(&repositoryURL, "repository-url", "", "Mod repository base URL (also reads "+repository.EnvURL+" env)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Load a saved option profile by name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write command output to a log file")
}

// splitInstallDir removes an install directory from args so that
// "fabric-mod-manager ~/.minecraft update" works. The directory is the first
// argument after any leading root flags that is not a command name.
func splitInstallDir(args []string) []string {
	positionalDir = ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args
		}
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			if flagTakesNextArg(arg) {
				i++
			}
			continue
		}
		if isCommandName(arg) {
			return args
		}
		positionalDir = arg
		return append(slices.Clone(args[:i]), args[i+1:]...)
	}
	return args
}

// flagTakesNextArg reports whether arg is a root flag whose value is the
// following argument, as in "-d /srv/mc" but not "-d=/srv/mc" or "-v".
func flagTakesNextArg(arg string) bool {
	var f *pflag.Flag
	switch {
	case strings.HasPrefix(arg, "--"):
		if strings.Contains(arg, "=") {
			return false
		}
		f = rootCmd.PersistentFlags().Lookup(arg[2:])
	case len(arg) == 2:
		f = rootCmd.PersistentFlags().ShorthandLookup(arg[1:])
	default:
		return false
	}
	return f != nil && f.NoOptDefVal == ""
}

func isCommandName(name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || slices.Contains(c.Aliases, name) {
			return true
		}
	}
	return false
}

// updaterOptions resolves the installation and builds the options shared by
// the mod commands.
func updaterOptions() (updater.Options, error) {
	dir, err := locate(instanceDir)
	if err != nil {
		return updater.Options{}, err
	}
	logging.Debugf("Verbose: install directory=%s\n", dir)
	return updater.Options{
		InstanceDir: dir,
		GameVersion: gameVersion,
		Prompter:    prompt.New(stdin, logging.Writer()),
		DryRun:      dryRun,
	}, nil
}

func newRepository() (*repository.Client, error) {
	if repositoryURL == "" {
		return nil, fmt.Errorf("%w: pass --repository-url or set %s", updater.ErrNoRepository, repository.EnvURL)
	}
	return repository.New(repositoryURL), nil
}

type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func wrapUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if validate == nil {
			return nil
		}
		if err := validate(cmd, args); err != nil {
			return wrapUsageError(err)
		}
		return nil
	}
}

func isUsageError(err error) bool {
	var ue *usageError
	if errors.As(err, &ue) {
		return true
	}

	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command ")
}
