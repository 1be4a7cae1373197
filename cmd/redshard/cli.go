package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var cliCmd = &cobra.Command{
	Use:   "cli",
	Short: "Interactive command prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCLI()
	},
}

func init() {
	rootCmd.AddCommand(cliCmd)
}

func runCLI() error {
	c, err := connect()
	if err != nil {
		return err
	}
	defer c.Close()

	log.Printf("connected to %d shard(s)\n", c.ShardCount())

	stdin := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			fmt.Println("bye")
			return nil
		}

		reply, err := c.Do(strings.Fields(line)...)
		if err != nil {
			fmt.Println("(error)", err)
			continue
		}
		printReply(reply, "")
	}
}

func printReply(v any, indent string) {
	switch val := v.(type) {
	case nil:
		fmt.Println(indent + "(nil)")
	case string:
		fmt.Println(indent + val)
	case int64:
		fmt.Printf("%s(integer) %d\n", indent, val)
	case []byte:
		fmt.Printf("%s%q\n", indent, val)
	case []any:
		if len(val) == 0 {
			fmt.Println(indent + "(empty)")
		}
		for i, e := range val {
			fmt.Printf("%s%d) ", indent, i+1)
			printReply(e, "")
		}
	default:
		fmt.Printf("%s%v\n", indent, val)
	}
}
