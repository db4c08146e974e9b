package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/swipectl/swipectl/daemon"
	"github.com/swipectl/swipectl/server"
)

const defaultServerAddress = "localhost:12000"

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Control server management commands",
	Long:  `Commands for talking to the control server of a running swipectl daemon.`,
}

var serverStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running daemon",
	Long:  `Connects to the control server and prints the daemon's status.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serverAddr
		if addr == "" {
			addr = defaultServerAddress
		}

		result, err := callServer(addr, "status")
		if err != nil {
			return err
		}

		printJson(result)
		return nil
	},
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop a daemonized swipectl",
	Long:  `Connects to the control server and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serverAddr
		if addr == "" {
			addr = defaultServerAddress
		}

		err := daemon.KillServer(addr)
		if err != nil {
			return err
		}

		fmt.Printf("Server shutdown command sent successfully\n")
		return nil
	},
}

// callServer sends a parameterless JSON-RPC request to a control server and
// returns the decoded result.
func callServer(addr string, method string) (interface{}, error) {
	// accept a bare port number
	if !strings.Contains(addr, ":") {
		if _, err := strconv.Atoi(addr); err == nil {
			addr = ":" + addr
		}
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	reqBody, err := json.Marshal(server.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  method,
		ID:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post("http://"+addr+"/rpc", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		if strings.Contains(err.Error(), "connection refused") {
			return nil, fmt.Errorf("server is not running on %s", addr)
		}
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	var rpcResp server.JSONRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, fmt.Errorf("server returned error: %v", rpcResp.Error)
	}

	return rpcResp.Result, nil
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// add server subcommands
	serverCmd.AddCommand(serverStatusCmd)
	serverCmd.AddCommand(serverKillCmd)

	serverCmd.PersistentFlags().StringVar(&serverAddr, "listen", "", fmt.Sprintf("address of the control server (default: %s)", defaultServerAddress))
}
