package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the server's INFO report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo()
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo() error {
	c, err := connect()
	if err != nil {
		return err
	}
	defer c.Close()

	info, err := c.Info()
	if err != nil {
		return err
	}

	fmt.Printf("version:  %s\n", info.Version)
	fmt.Printf("role:     %s\n", info.Role)
	fmt.Printf("clients:  %d\n", info.ConnectedClients)
	fmt.Printf("memory:   %d bytes\n", info.UsedMemory)
	fmt.Printf("uptime:   %ds\n", info.UptimeInSeconds)
	fmt.Println()

	keys := make([]string, 0, len(info.Params))
	for k := range info.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s:%s\n", k, info.Params[k])
	}
	return nil
}
