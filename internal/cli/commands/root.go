package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cassdao"
	"cassdao/drivers/db/cassandra"
	"cassdao/internal/cli/config"
	"cassdao/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

// SessionOpener turns a driver config into a session. Tests swap it for a fake.
type SessionOpener func(cfg cassandra.Config) cassdao.Session

// DefaultOpener opens a lazily connected gocql session.
func DefaultOpener(cfg cassandra.Config) cassdao.Session {
	return cassandra.Open(cfg)
}

type rootOptions struct {
	configPath string
	v          *viper.Viper
	open       SessionOpener
}

// NewRootCommand creates the root command
func NewRootCommand(open SessionOpener) *cobra.Command {
	opts := &rootOptions{v: viper.New(), open: open}

	rootCmd := &cobra.Command{
		Use:   "cassdao",
		Short: "Inspect Cassandra tables the way the DAO adapter sees them",
		Long: color.CyanString(`cassdao - Cassandra DAO adapter tooling

Loads a table's column classification (primary key, index, plain column)
and prints the CQL fragments and statements the adapter generates for it.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./cassdao.yaml)")
	flags.StringSlice("hosts", nil, "cassandra contact points")
	flags.String("keyspace", "", "default keyspace for unqualified table names")
	flags.String("consistency", "", "default consistency level")
	_ = opts.v.BindPFlag("cassandra.hosts", flags.Lookup("hosts"))
	_ = opts.v.BindPFlag("cassandra.keyspace", flags.Lookup("keyspace"))
	_ = opts.v.BindPFlag("cassandra.consistency", flags.Lookup("consistency"))

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newDescribeCommand(opts))
	rootCmd.AddCommand(newFragmentsCommand(opts))
	rootCmd.AddCommand(newExecCommand(opts))

	return rootCmd
}

// session loads the configuration and opens a session from it.
func (o *rootOptions) session() (cassdao.Session, error) {
	cfg, err := config.Load(o.v, o.configPath)
	if err != nil {
		return nil, err
	}
	return o.open(cfg.Cassandra), nil
}

// adapter builds an adapter for table on a freshly opened session.
func (o *rootOptions) adapter(table string) (*cassdao.Adapter, error) {
	s, err := o.session()
	if err != nil {
		return nil, err
	}
	return cassdao.New(table, func() cassdao.Session { return s }, nil), nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "cassdao version: ")
			fmt.Fprintln(out, Version)
			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, runtime.Version())
		},
	}
}

// Execute runs the root command
func Execute() error {
	logging.Setup(os.Stderr)
	rootCmd := NewRootCommand(DefaultOpener)
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
