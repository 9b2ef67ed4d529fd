package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/dtypes/internal/backends"
	"github.com/born-ml/dtypes/internal/envconfig"
	"github.com/born-ml/dtypes/internal/logutil"
	"github.com/born-ml/dtypes/internal/resolver"
)

const version = "v0.1.0-dev"

// NewCLI builds the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "borndtype",
		Short:         "Resolve, infer and validate dtypes for Born backends",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringP("backend", "b", envconfig.Backend(), fmt.Sprintf("Backend to resolve against %v", backends.Names))
	rootCmd.PersistentFlags().Bool("debug", false, "Log resolver decisions to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newBackendsCmd(),
		newDefaultCmd(),
		newInferCmd(),
		newPromoteCmd(),
		newCastCmd(),
		newValidCmd(),
		newConvertCmd(),
		newSupportedCmd(),
		newInfoCmd(),
		newShaderCmd(),
		newEnvCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "borndtype %s\n", version)
		},
	}
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List known backends and their dtypes",
		Args:  cobra.NoArgs,
		RunE:  BackendsHandler,
	}
}

func newDefaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "default",
		Short: "Show the ambient default dtypes",
		Args:  cobra.NoArgs,
		RunE:  DefaultHandler,
	}
	cmd.Flags().StringArray("push", nil, "Push a default before resolving, as KIND=DTYPE (kind: general, float, int)")
	return cmd
}

func newInferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer LITERAL",
		Short: "Infer the dtype of a JSON literal",
		Example: `  borndtype infer '[1, 2, 9223372036854775808]' --kind int
  borndtype infer 3.5e38 --kind float`,
		Args: cobra.ExactArgs(1),
		RunE: InferHandler,
	}
	cmd.Flags().String("kind", "general", "Inference path: general, float or int")
	return cmd
}

func newPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote DTYPE...",
		Short: "Show the result dtype of combining operands",
		Args:  cobra.MinimumNArgs(1),
		RunE:  PromoteHandler,
	}
}

func newCastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cast FROM TO",
		Short: "Report whether a cast is safe",
		Args:  cobra.ExactArgs(2),
		RunE:  CastHandler,
	}
}

func newValidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "valid DTYPE...",
		Short: "Check dtypes against the backend",
		Args:  cobra.MinimumNArgs(1),
		RunE:  ValidHandler,
	}
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert DTYPE",
		Short: "Convert a dtype from another backend to this backend's native handle",
		Args:  cobra.ExactArgs(1),
		RunE:  ConvertHandler,
	}
	cmd.Flags().String("from", backends.Default, "Backend the dtype is spelled for")
	return cmd
}

func newSupportedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "supported OP",
		Short: "List the dtypes an operation supports on the backend",
		Args:  cobra.ExactArgs(1),
		RunE:  SupportedHandler,
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info DTYPE",
		Short: "Show machine limits of a dtype",
		Args:  cobra.ExactArgs(1),
		RunE:  InfoHandler,
	}
}

func newShaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "shader OP DTYPE",
		Short:   "Print the WGSL kernel of an element-wise operation",
		Example: `  borndtype shader add int32 -b webgpu`,
		Args:    cobra.ExactArgs(2),
		RunE:    ShaderHandler,
	}
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show configuration environment variables",
		Args:  cobra.NoArgs,
		RunE:  EnvHandler,
	}
}

// newContext builds a resolver for the --backend flag, seeded from the
// environment.
func newContext(cmd *cobra.Command) (*resolver.Context, error) {
	name, err := cmd.Flags().GetString("backend")
	if err != nil {
		return nil, err
	}
	p, err := backends.New(name)
	if err != nil {
		return nil, err
	}

	level := envconfig.LogLevel()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = logutil.LevelTrace
	}
	c, err := resolver.New(p, resolver.WithLogger(logutil.NewLogger(cmd.ErrOrStderr(), level)))
	if err != nil {
		return nil, err
	}
	if err := c.Seed(); err != nil {
		return nil, err
	}
	return c, nil
}
