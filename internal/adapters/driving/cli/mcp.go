package cli

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/emoticare/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose EmotiCare to MCP clients",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve answers, tips and quotes over MCP",
	Long: `Serve EmotiCare over the Model Context Protocol.

Tools: ask, retrieve, tips_for_mood, quote_of_the_day.
Resources: emoticare://moods, emoticare://document and
emoticare://moods/{mood}/tips.

The support document is indexed before the server starts accepting
requests. Stdio is used unless --port is given.

Examples:
  emoticare mcp serve
  emoticare mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "interface to bind when --port is set")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

var errInvalidPort = errors.New("port must be between 0 and 65535")

// mcpAddr returns the HTTP listen address, or "" for stdio.
func mcpAddr(host string, port int) (string, error) {
	if port < 0 || port > 65535 {
		return "", fmt.Errorf("%w: %d", errInvalidPort, port)
	}
	if port == 0 {
		return "", nil
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := mcpAddr(mcpHost, mcpPort)
	if err != nil {
		return err
	}

	wellness, err := getWellnessService()
	if err != nil {
		return err
	}
	answers, err := getAnswerService(cmd.Context())
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Answer: answers, Wellness: wellness})
	if err != nil {
		return err
	}

	if addr == "" {
		return server.Run(cmd.Context())
	}
	cmd.PrintErrf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
