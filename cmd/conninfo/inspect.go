package main

import (
	"fmt"
	"os"

	"github.com/k0sproject/conninfo"
	"github.com/k0sproject/conninfo/log"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [host...]",
	Short: "Print the connection info for hosts",
	Long: `Inspect loads the hosts file and builds the connection info for each
host, or only the named ones. Missing passwords and passphrases are asked
on the terminal. Secrets are never printed.`,
	RunE: runInspect,
}

func loadHosts() (*conninfo.Config, error) {
	path := settings.GetString("config")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hosts file: %w", err)
	}
	defer f.Close()

	config, err := conninfo.LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return config, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	config, err := loadHosts()
	if err != nil {
		return err
	}

	hosts := config.Hosts
	if len(args) > 0 {
		hosts = make([]*conninfo.HostConfig, 0, len(args))
		for _, name := range args {
			h, ok := config.Host(name)
			if !ok {
				return fmt.Errorf("host %q: %w", name, conninfo.ErrNotFound)
			}
			hosts = append(hosts, h)
		}
	}

	prompter := conninfo.DefaultPrompter()
	for _, h := range hosts {
		log.InjectLogger(logger, h, log.KeyAlias, h.Name())
		ci, err := h.ConnectionInfo(prompter)
		if err != nil {
			h.Log().Error("failed to build connection info", log.ErrorAttr(err))
			return fmt.Errorf("%s: %w", h.Name(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", h.Name(), ci)
	}

	return nil
}
