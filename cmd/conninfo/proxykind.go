package main

import (
	"fmt"

	"github.com/k0sproject/conninfo/proxy"
	"github.com/spf13/cobra"
)

var proxyKindCmd = &cobra.Command{
	Use:   "proxy-kind <label>",
	Short: "Show which proxy type a label resolves to",
	Long: `Proxy-kind prints the proxy type a label resolves to. Labels are case
sensitive, anything other than HTTP, Socks4 or Socks5 is treated as HTTP.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind := proxy.Resolve(args[0])
		if proxy.IsKnown(args[0]) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", kind, kind.Scheme())
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, unrecognized label %q)\n", kind, kind.Scheme(), args[0])
	},
}
